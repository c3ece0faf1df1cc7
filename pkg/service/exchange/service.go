package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/amirasaad/fxconvert/pkg/exchange"
	"github.com/amirasaad/fxconvert/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Service fetches rates from a primary RateSource and an optional
// PriceSource and publishes them into a Store.
type Service struct {
	primary     exchange.RateSource
	prices      exchange.PriceSource
	store       *exchange.Store
	defaultBase string
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// New creates a new exchange service. prices and m may be nil.
func New(
	primary exchange.RateSource,
	prices exchange.PriceSource,
	store *exchange.Store,
	defaultBase string,
	log *slog.Logger,
	m *metrics.Metrics,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	if store == nil {
		store = exchange.NewStore()
	}
	defaultBase = exchange.NormalizeCode(defaultBase)
	if defaultBase == "" {
		defaultBase = exchange.DefaultBase
	}
	return &Service{
		primary:     primary,
		prices:      prices,
		store:       store,
		defaultBase: defaultBase,
		logger:      log,
		metrics:     m,
	}
}

// Current returns the published table, or nil before the first fetch.
func (s *Service) Current() *exchange.RateTable {
	return s.store.Load()
}

// DefaultBase returns the base used when FetchRates is called without one.
func (s *Service) DefaultBase() string {
	return s.defaultBase
}

// FetchRates runs the primary and the price fetch concurrently. Each
// result is published as soon as it arrives, so a slow price source never
// holds back the primary rates. A primary failure leaves the current table
// as it was, discards the asset prices of this cycle and is returned
// wrapped in exchange.ErrNetworkFailure. A price failure is only logged.
func (s *Service) FetchRates(ctx context.Context, base string) (*exchange.RateTable, error) {
	base = exchange.NormalizeCode(base)
	if base == "" {
		base = s.defaultBase
	}
	logger := s.logger.With("base", base)
	update := s.store.Begin(base)

	var g errgroup.Group

	g.Go(func() error {
		start := time.Now()
		q, err := s.primary.FetchRates(ctx, base)
		if err == nil {
			err = validateQuote(q, base)
		}
		s.metrics.ObserveFetch(s.primary.Name(), err, time.Since(start))
		if err != nil {
			update.Fail()
			return fmt.Errorf("%w: %s: %w", exchange.ErrNetworkFailure, s.primary.Name(), err)
		}
		table := update.InstallPrimary(q.Rates, s.primary.Name(), q.AsOf)
		logger.Info("Rates installed", "source", s.primary.Name(), "count", table.Len(), "table_id", table.ID)
		return nil
	})

	if s.prices != nil {
		g.Go(func() error {
			start := time.Now()
			prices, err := s.prices.FetchPrices(ctx, base)
			s.metrics.ObserveFetch(s.prices.Name(), err, time.Since(start))
			if err != nil {
				logger.Warn("Asset price fetch failed", "source", s.prices.Name(), "error", err)
				return nil
			}
			s.applyPrices(logger, update, prices)
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		logger.Error("Rate fetch failed", "source", s.primary.Name(), "error", err)
	}

	table := s.store.Load()
	if table != nil {
		s.metrics.ObserveTable(table.Len(), table.FetchedAt)
	}
	return table, err
}

// applyPrices turns asset prices into rates (units of asset per unit of base).
func (s *Service) applyPrices(logger *slog.Logger, update *exchange.Update, prices map[string]float64) {
	for code, price := range prices {
		if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			logger.Warn("Ignoring asset price", "code", code, "price", price, "error", exchange.ErrInvalidRate)
			continue
		}
		if !s.store.IsAsset(code) {
			logger.Warn("Ignoring unregistered asset", "code", code)
			continue
		}
		if update.SetAsset(code, 1/price, s.prices.Name()) == nil {
			logger.Debug("Asset rate not published yet", "code", code)
		}
	}
}

// validateQuote rejects an empty quote, one for another base, or one
// carrying a non-positive rate.
func validateQuote(q *exchange.Quote, base string) error {
	if q == nil || len(q.Rates) == 0 {
		return fmt.Errorf("%w: empty quote", exchange.ErrInvalidRate)
	}
	if qb := exchange.NormalizeCode(q.Base); qb != "" && qb != base {
		return fmt.Errorf("%w: got %s, want %s", exchange.ErrBaseMismatch, qb, base)
	}
	for code, rate := range q.Rates {
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return fmt.Errorf("%w: %s=%v", exchange.ErrInvalidRate, code, rate)
		}
	}
	return nil
}
