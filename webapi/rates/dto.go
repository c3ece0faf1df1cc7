package rates

import (
	"time"

	"github.com/amirasaad/fxconvert/pkg/exchange"
	"github.com/google/uuid"
)

// ConvertRequest is the input of a conversion, from the query string or a JSON body.
// The amount is parsed by the conversion service so that a bad amount is
// reported with its own status.
type ConvertRequest struct {
	Amount string `query:"amount" json:"amount"`
	From   string `query:"from" json:"from" validate:"required,alpha,min=3,max=5"`
	To     string `query:"to" json:"to" validate:"required,alpha,min=3,max=5"`
}

// RefreshRequest selects the base of a manual refresh.
type RefreshRequest struct {
	Base string `query:"base" validate:"omitempty,alpha,min=3,max=5"`
}

// TableResponse is the JSON view of a rate table.
type TableResponse struct {
	ID        uuid.UUID          `json:"id"`
	Base      string             `json:"base"`
	FetchedAt time.Time          `json:"fetched_at"`
	Rates     map[string]float64 `json:"rates"`
	Sources   map[string]string  `json:"sources"`
}

// ToTableResponse converts a rate table to a response DTO
func ToTableResponse(table *exchange.RateTable) *TableResponse {
	resp := &TableResponse{
		ID:        table.ID,
		Base:      table.Base,
		FetchedAt: table.FetchedAt,
		Rates:     table.Rates(),
		Sources:   make(map[string]string, table.Len()),
	}
	for _, code := range table.Codes() {
		resp.Sources[code] = table.Source(code)
	}
	return resp
}

func (r ConvertRequest) toDomain() exchange.ConversionRequest {
	return exchange.ConversionRequest{Amount: r.Amount, From: r.From, To: r.To}
}
