package currency

import "github.com/amirasaad/fxconvert/pkg/currency"

// Response represents the response structure for currency data
type Response struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Locale      string `json:"locale"`
	Decimals    int    `json:"decimals"`
	Icon        string `json:"icon,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

// ToResponse converts currency metadata to a response DTO
func ToResponse(meta currency.Meta) *Response {
	return &Response{
		Code:        meta.Code,
		Name:        meta.Name,
		Symbol:      meta.Symbol,
		Locale:      meta.Locale,
		Decimals:    meta.Decimals,
		Icon:        meta.Icon,
		Placeholder: meta.Placeholder,
	}
}
