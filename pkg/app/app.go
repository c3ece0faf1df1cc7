// Package app wires the converter's services from their dependencies.
package app

import (
	"log/slog"
	"time"

	"github.com/amirasaad/fxconvert/pkg/config"
	"github.com/amirasaad/fxconvert/pkg/currency"
	"github.com/amirasaad/fxconvert/pkg/exchange"
	"github.com/amirasaad/fxconvert/pkg/metrics"
	"github.com/amirasaad/fxconvert/pkg/money"
	"github.com/amirasaad/fxconvert/pkg/service/conversion"
	exchangesvc "github.com/amirasaad/fxconvert/pkg/service/exchange"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps contains all the dependencies needed to build an App
type Deps struct {
	RateSource       exchange.RateSource
	PriceSource      exchange.PriceSource // nil disables asset prices
	Store            *exchange.Store
	CurrencyRegistry *currency.Registry
	Metrics          *metrics.Metrics
	MetricsRegistry  *prometheus.Registry
	Logger           *slog.Logger
}

type App struct {
	Deps              *Deps
	Config            *config.App
	Formatter         *money.Formatter
	ExchangeService   *exchangesvc.Service
	ConversionService *conversion.Service
}

func New(deps *Deps, cfg *config.App) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.CurrencyRegistry == nil {
		deps.CurrencyRegistry = currency.New()
	}
	base := exchange.DefaultBase
	if cfg != nil && cfg.ExchangeRate != nil {
		base = cfg.ExchangeRate.Base
	}

	app := &App{
		Deps:      deps,
		Config:    cfg,
		Formatter: money.NewFormatter(deps.CurrencyRegistry),
	}
	app.ExchangeService = exchangesvc.New(
		deps.RateSource,
		deps.PriceSource,
		deps.Store,
		base,
		deps.Logger.With("service", "exchange"),
		deps.Metrics,
	)
	app.ConversionService = conversion.New(
		app.Formatter,
		deps.Logger.With("service", "conversion"),
		deps.Metrics,
	)
	return app
}

// Refresher returns the background refresher configured for this app.
func (a *App) Refresher() *exchangesvc.Refresher {
	var interval time.Duration
	if a.Config != nil && a.Config.ExchangeRate != nil {
		interval = a.Config.ExchangeRate.RefreshInterval
	}
	return exchangesvc.NewRefresher(a.ExchangeService, interval)
}
