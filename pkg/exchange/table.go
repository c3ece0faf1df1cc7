package exchange

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RateTable is an immutable snapshot of rates relative to Base.
// Rate(X) is the number of X units per one unit of Base.
type RateTable struct {
	ID        uuid.UUID
	Base      string
	FetchedAt time.Time
	rates     map[string]float64
	sources   map[string]string
}

// NewRateTable builds a table from rates. The map is copied.
func NewRateTable(base string, rates map[string]float64) *RateTable {
	t := &RateTable{
		ID:        uuid.New(),
		Base:      NormalizeCode(base),
		FetchedAt: time.Now().UTC(),
		rates:     make(map[string]float64, len(rates)),
		sources:   make(map[string]string, len(rates)),
	}
	for code, rate := range rates {
		t.rates[NormalizeCode(code)] = rate
	}
	return t
}

// Rate returns the rate for code. A nil table has no rates.
func (t *RateTable) Rate(code string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	rate, ok := t.rates[NormalizeCode(code)]
	return rate, ok
}

// Source returns the name of the source that supplied code's rate.
func (t *RateTable) Source(code string) string {
	if t == nil {
		return ""
	}
	return t.sources[NormalizeCode(code)]
}

// Rates returns a copy of all rates.
func (t *RateTable) Rates() map[string]float64 {
	if t == nil {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(t.rates))
	for code, rate := range t.rates {
		out[code] = rate
	}
	return out
}

// Codes returns all currency codes in the table, sorted.
func (t *RateTable) Codes() []string {
	if t == nil {
		return nil
	}
	codes := make([]string, 0, len(t.rates))
	for code := range t.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of rates in the table.
func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rates)
}

// clone copies t so a writer can derive the next snapshot.
func (t *RateTable) clone() *RateTable {
	c := &RateTable{
		ID:        t.ID,
		Base:      t.Base,
		FetchedAt: t.FetchedAt,
		rates:     make(map[string]float64, len(t.rates)+1),
		sources:   make(map[string]string, len(t.sources)+1),
	}
	for k, v := range t.rates {
		c.rates[k] = v
	}
	for k, v := range t.sources {
		c.sources[k] = v
	}
	return c
}

// NormalizeCode trims and upper-cases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
