package initializer

import (
	"log/slog"
	"net/http"

	infra_provider "github.com/amirasaad/fxconvert/infra/provider"
	currencyfixtures "github.com/amirasaad/fxconvert/internal/fixtures/currency"
	"github.com/amirasaad/fxconvert/pkg/app"
	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/pkg/currency"
	"github.com/amirasaad/fxconvert/pkg/exchange"
	"github.com/amirasaad/fxconvert/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := SetupLogger(cfg.Log)
	return NewDeps(cfg, logger), nil
}

// NewDeps builds the dependencies around an existing logger.
func NewDeps(cfg *config.App, logger *slog.Logger) *app.Deps {
	deps := &app.Deps{Logger: logger}

	// Currency metadata used for display
	deps.CurrencyRegistry = currency.New()
	if cfg.Currency != nil && cfg.Currency.LoadExtra {
		metas, err := currencyfixtures.LoadCurrencyMetaCSV(cfg.Currency.MetaFile)
		if err != nil {
			logger.Warn("Failed to load currency meta from CSV", "path", cfg.Currency.MetaFile, "error", err)
		}
		for _, meta := range metas {
			deps.CurrencyRegistry.Register(meta)
		}
	}
	logger.Info("Currency metadata loaded", "count", deps.CurrencyRegistry.Count())

	// Metrics live in their own registry so tests can build several apps
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.MetricsRegistry = reg
	deps.Metrics = metrics.New(reg)

	// Primary rate source
	deps.RateSource = infra_provider.NewExchangeRateAPIProvider(
		cfg.ExchangeRate,
		&http.Client{Timeout: cfg.ExchangeRate.HTTPTimeout},
		logger,
	)

	// Asset price source
	assetCodes := cfg.Crypto.AssetCodes()
	if len(assetCodes) > 0 {
		deps.PriceSource = infra_provider.NewCoinGeckoProvider(
			cfg.Crypto,
			&http.Client{Timeout: cfg.Crypto.HTTPTimeout},
			logger,
		)
		for _, code := range assetCodes {
			if !deps.CurrencyRegistry.IsSupported(code) {
				logger.Warn("Asset has no display metadata", "code", code)
			}
		}
	} else {
		logger.Info("Asset prices disabled")
	}

	deps.Store = exchange.NewStore(assetCodes...)
	return deps
}
