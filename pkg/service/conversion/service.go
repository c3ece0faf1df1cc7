// Package conversion converts amounts between any two codes of a rate table.
package conversion

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/amirasaad/fxconvert/pkg/exchange"
	"github.com/amirasaad/fxconvert/pkg/metrics"
	"github.com/amirasaad/fxconvert/pkg/money"
)

// ParseAmount parses user input as a finite decimal number.
func ParseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %q", exchange.ErrInvalidAmount, raw)
	}
	return amount, nil
}

// ConvertAmount converts amount from one code to another through the
// table's base: amount / rate(from) * rate(to).
func ConvertAmount(table *exchange.RateTable, amount float64, from, to string) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, exchange.ErrInvalidAmount
	}
	fromRate, err := lookupRate(table, from)
	if err != nil {
		return 0, err
	}
	toRate, err := lookupRate(table, to)
	if err != nil {
		return 0, err
	}
	return amount / fromRate * toRate, nil
}

func lookupRate(table *exchange.RateTable, code string) (float64, error) {
	rate, ok := table.Rate(code)
	if !ok || rate == 0 {
		return 0, fmt.Errorf("%w: no rate for %s", exchange.ErrRatesUnavailable, exchange.NormalizeCode(code))
	}
	return rate, nil
}

// Service converts user requests and renders the result.
type Service struct {
	formatter *money.Formatter
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New creates a conversion service. Any argument may be nil.
func New(formatter *money.Formatter, log *slog.Logger, m *metrics.Metrics) *Service {
	if formatter == nil {
		formatter = money.NewFormatter(nil)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{formatter: formatter, logger: log, metrics: m}
}

// Convert validates req against table and converts it. The amount is
// checked first, then the rates. Errors wrap exchange.ErrInvalidAmount or
// exchange.ErrRatesUnavailable; the table is never modified.
func (s *Service) Convert(table *exchange.RateTable, req exchange.ConversionRequest) (*exchange.ConversionResult, error) {
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		s.observe(err)
		return nil, err
	}

	from := exchange.NormalizeCode(req.From)
	to := exchange.NormalizeCode(req.To)
	converted, err := ConvertAmount(table, amount, from, to)
	if err != nil {
		s.logger.Debug("Conversion not possible yet", "from", from, "to", to, "error", err)
		s.observe(err)
		return nil, err
	}

	fromRate, _ := table.Rate(from)
	toRate, _ := table.Rate(to)
	s.observe(nil)
	return &exchange.ConversionResult{
		Amount:             amount,
		Converted:          converted,
		Rate:               toRate / fromRate,
		From:               from,
		To:                 to,
		FormattedAmount:    s.formatter.Format(amount, from),
		FormattedConverted: s.formatter.Format(converted, to),
		Base:               table.Base,
		RatesAsOf:          table.FetchedAt,
	}, nil
}

func (s *Service) observe(err error) {
	switch {
	case err == nil:
		s.metrics.ObserveConversion("success")
	case errors.Is(err, exchange.ErrInvalidAmount):
		s.metrics.ObserveConversion("invalid_amount")
	case errors.Is(err, exchange.ErrRatesUnavailable):
		s.metrics.ObserveConversion("rates_unavailable")
	default:
		s.metrics.ObserveConversion("error")
	}
}
