package exchange

import "errors"

// Common errors for exchange operations
var (
	// ErrInvalidAmount indicates the amount to convert is not a finite number
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrRatesUnavailable indicates the current rate table lacks a requested currency
	ErrRatesUnavailable = errors.New("exchange rates unavailable")

	// ErrNetworkFailure indicates a rate source could not be reached or answered garbage
	ErrNetworkFailure = errors.New("exchange rate fetch failed")

	// ErrInvalidRate indicates a source returned a non-positive or non-finite rate
	ErrInvalidRate = errors.New("invalid exchange rate")

	// ErrBaseMismatch indicates a source answered for another base than requested
	ErrBaseMismatch = errors.New("quote base mismatch")
)

// ProviderError represents an error from a rate source
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	return "provider " + e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// User-facing texts shown by the presentation layer.
const (
	MessageInvalidAmount    = "Digite um valor válido"
	MessageRatesUnavailable = "Carregando taxas..."
)

// UserMessage maps a conversion error to the text displayed to the user.
// Unknown errors map to an empty string.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return MessageInvalidAmount
	case errors.Is(err, ErrRatesUnavailable):
		return MessageRatesUnavailable
	default:
		return ""
	}
}
