package money

import "strings"

// Code represents a currency code (e.g., "USD", "BTC").
type Code string

// ParseCode trims and upper-cases s.
func ParseCode(s string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(s)))
}

// IsValid checks the code has 3 to 5 uppercase ASCII letters.
// Crypto tickers are allowed alongside ISO 4217 codes.
func (c Code) IsValid() bool {
	if len(c) < 3 || len(c) > 5 {
		return false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}
