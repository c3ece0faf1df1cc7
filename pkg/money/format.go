// Package money renders monetary amounts for display.
//
// Numbers are localized with golang.org/x/text using the locale declared
// for the currency; codes with no declared locale fall back to en-US while
// still carrying their own symbol.
package money

import (
	"math"
	"strings"

	"github.com/amirasaad/fxconvert/pkg/currency"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultDecimals is used when neither the registry nor CLDR knows a code.
const DefaultDecimals = 2

// Formatter formats amounts using currency metadata from a registry.
type Formatter struct {
	currencies *currency.Registry
}

// NewFormatter creates a Formatter backed by currencies.
func NewFormatter(currencies *currency.Registry) *Formatter {
	if currencies == nil {
		currencies = currency.New()
	}
	return &Formatter{currencies: currencies}
}

// Format renders amount in code's regional convention, e.g.
// "$1,234.50", "R$ 1.234,50" or "1.234,50 €".
func (f *Formatter) Format(amount float64, code string) string {
	meta := f.currencies.Get(code)
	tag := parseLocale(meta.Locale)

	symbol, decimals := meta.Symbol, meta.Decimals
	if symbol == "" || decimals < 0 {
		cldrSymbol, cldrDecimals := cldr(meta.Code, tag)
		if symbol == "" {
			symbol = cldrSymbol
		}
		if decimals < 0 {
			decimals = cldrDecimals
		}
	}

	pattern := meta.Pattern
	if pattern == "" {
		pattern = currency.DefaultPattern
	}
	// bare codes read better detached from the number: "CHF 10.00"
	if symbol == meta.Code && pattern == currency.DefaultPattern {
		pattern = "¤ #"
	}

	abs := roundHalfUp(math.Abs(amount), decimals)
	num := message.NewPrinter(tag).Sprint(number.Decimal(abs, number.Scale(decimals)))
	out := strings.NewReplacer("¤", symbol, "#", num).Replace(pattern)
	if amount < 0 && abs != 0 {
		return "-" + out
	}
	return out
}

// roundHalfUp rounds a non-negative x to decimals places, ties away from
// zero. number.Scale alone would round ties to even.
func roundHalfUp(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(x*p) / p
}

func parseLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// cldr looks code up in the CLDR currency data shipped with x/text.
func cldr(code string, tag language.Tag) (string, int) {
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		return code, DefaultDecimals
	}
	scale, _ := xcurrency.Standard.Rounding(unit)
	return message.NewPrinter(tag).Sprint(xcurrency.Symbol(unit)), scale
}
