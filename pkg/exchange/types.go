package exchange

import (
	"context"
	"time"
)

// DefaultBase is the base currency used when none is configured.
const DefaultBase = "USD"

// Quote is a full set of rates relative to Base as returned by a RateSource.
type Quote struct {
	Base  string
	Rates map[string]float64
	AsOf  time.Time
}

// RateSource fetches every rate it knows relative to a base currency.
type RateSource interface {
	// FetchRates returns the rates for base. Rates are units of the
	// quoted currency per one unit of base.
	FetchRates(ctx context.Context, base string) (*Quote, error)

	// Name returns the source's name for logging and identification.
	Name() string
}

// PriceSource prices single assets (e.g. BTC) in a quote currency.
type PriceSource interface {
	// FetchPrices returns the price of one unit of each configured asset,
	// keyed by asset code, expressed in vs.
	FetchPrices(ctx context.Context, vs string) (map[string]float64, error)

	// Name returns the source's name for logging and identification.
	Name() string
}

// ConversionRequest holds raw user input for a single conversion.
type ConversionRequest struct {
	Amount string `json:"amount"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// ConversionResult holds the outcome of a successful conversion.
type ConversionResult struct {
	Amount             float64   `json:"amount"`
	Converted          float64   `json:"converted"`
	Rate               float64   `json:"rate"`
	From               string    `json:"from"`
	To                 string    `json:"to"`
	FormattedAmount    string    `json:"formatted_amount"`
	FormattedConverted string    `json:"formatted_converted"`
	Base               string    `json:"base"`
	RatesAsOf          time.Time `json:"rates_as_of"`
}
