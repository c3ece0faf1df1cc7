package currency

import (
	"strconv"
	"strings"

	"github.com/amirasaad/fxconvert/pkg/registry"
)

const (
	// DefaultLocale is used for codes with no declared locale
	DefaultLocale = "en-US"
	// DefaultPattern places the symbol right before the number
	DefaultPattern = "¤#"
)

// Meta holds display metadata for one currency.
//
// Pattern is the layout of a formatted amount: "¤" stands for the symbol
// and "#" for the localized number, e.g. "¤ #" or "# ¤".
// Decimals < 0 means unknown; formatters fall back to CLDR data.
type Meta struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Locale      string `json:"locale"`
	Decimals    int    `json:"decimals"`
	Pattern     string `json:"pattern"`
	Icon        string `json:"icon,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Registry wraps the generic registry for currency-specific operations
type Registry struct {
	registry *registry.Registry
}

// Defaults returns the currencies offered by the converter out of the box.
func Defaults() []Meta {
	return []Meta{
		{Code: "USD", Name: "Dólar Americano", Symbol: "$", Locale: "en-US", Decimals: 2, Pattern: "¤#", Icon: "./assets/dolar.png", Placeholder: "$ 0.00"},
		{Code: "BRL", Name: "Real Brasileiro", Symbol: "R$", Locale: "pt-BR", Decimals: 2, Pattern: "¤ #", Icon: "./assets/real.png", Placeholder: "R$ 0.00"},
		{Code: "EUR", Name: "Euro", Symbol: "€", Locale: "de-DE", Decimals: 2, Pattern: "# ¤", Icon: "./assets/euro.png", Placeholder: "€ 0,00"},
		{Code: "GBP", Name: "Libra", Symbol: "£", Locale: "en-GB", Decimals: 2, Pattern: "¤#", Icon: "./assets/libra.png", Placeholder: "£ 0.00"},
		{Code: "JPY", Name: "Iene", Symbol: "¥", Locale: "ja-JP", Decimals: 0, Pattern: "¤#", Icon: "./assets/iene.png", Placeholder: "¥ 0"},
		{Code: "BTC", Name: "Bitcoin", Symbol: "₿", Locale: "en-US", Decimals: 8, Pattern: "¤ #", Icon: "./assets/bitcoin.png", Placeholder: "₿ 0.00000000"},
	}
}

// New creates a registry preloaded with Defaults.
func New() *Registry {
	r := &Registry{registry: registry.New()}
	for _, meta := range Defaults() {
		r.Register(meta)
	}
	return r
}

// NewEmpty creates a registry with no currencies.
func NewEmpty() *Registry {
	return &Registry{registry: registry.New()}
}

// Register adds or updates a currency in the registry
func (r *Registry) Register(meta Meta) {
	code := normalize(meta.Code)
	r.registry.Register(code, registry.Meta{
		Name:   meta.Name,
		Active: true,
		Metadata: map[string]string{
			"symbol":      meta.Symbol,
			"locale":      meta.Locale,
			"decimals":    strconv.Itoa(meta.Decimals),
			"pattern":     meta.Pattern,
			"icon":        meta.Icon,
			"placeholder": meta.Placeholder,
		},
	})
}

// Lookup returns the registered metadata for code.
func (r *Registry) Lookup(code string) (Meta, bool) {
	code = normalize(code)
	rm, ok := r.registry.Lookup(code)
	if !ok {
		return Meta{}, false
	}

	decimals := -1
	if dec, err := strconv.Atoi(rm.Metadata["decimals"]); err == nil {
		decimals = dec
	}
	return Meta{
		Code:        code,
		Name:        rm.Name,
		Symbol:      rm.Metadata["symbol"],
		Locale:      orDefault(rm.Metadata["locale"], DefaultLocale),
		Decimals:    decimals,
		Pattern:     orDefault(rm.Metadata["pattern"], DefaultPattern),
		Icon:        rm.Metadata["icon"],
		Placeholder: rm.Metadata["placeholder"],
	}, true
}

// Get returns metadata for code. Unknown codes get the default locale,
// no symbol and unknown decimals.
func (r *Registry) Get(code string) Meta {
	if meta, ok := r.Lookup(code); ok {
		return meta
	}
	code = normalize(code)
	return Meta{
		Code:     code,
		Name:     code,
		Locale:   DefaultLocale,
		Decimals: -1,
		Pattern:  DefaultPattern,
	}
}

// IsSupported checks if a currency code is registered
func (r *Registry) IsSupported(code string) bool {
	return r.registry.IsRegistered(normalize(code))
}

// List returns metadata for every registered currency, sorted by code.
func (r *Registry) List() []Meta {
	codes := r.registry.ListRegistered()
	metas := make([]Meta, 0, len(codes))
	for _, code := range codes {
		if meta, ok := r.Lookup(code); ok {
			metas = append(metas, meta)
		}
	}
	return metas
}

// Unregister removes a currency from the registry
func (r *Registry) Unregister(code string) bool {
	return r.registry.Unregister(normalize(code))
}

// Count returns the total number of registered currencies
func (r *Registry) Count() int {
	return r.registry.Count()
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
