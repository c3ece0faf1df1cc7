package conversion

import (
	"testing"

	"github.com/amirasaad/fxconvert/pkg/exchange"
	"github.com/amirasaad/fxconvert/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *exchange.RateTable {
	return exchange.NewRateTable("USD", map[string]float64{
		"USD": 1,
		"BRL": 5,
		"EUR": 0.9,
		"BTC": 0.00002,
	})
}

func TestConvertAmount_Scenario(t *testing.T) {
	table := sampleTable()
	tests := []struct {
		from, to string
		want     float64
	}{
		{"USD", "BRL", 50},
		{"USD", "EUR", 9},
		{"EUR", "BRL", 10 / 0.9 * 5},
		{"usd", "btc", 0.0002},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			got, err := ConvertAmount(table, 10, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
	got, _ := ConvertAmount(table, 10, "EUR", "BRL")
	assert.InDelta(t, 55.56, got, 0.005)
}

func TestConvertAmount_Identity(t *testing.T) {
	table := sampleTable()
	for _, code := range table.Codes() {
		got, err := ConvertAmount(table, 123.45, code, code)
		require.NoError(t, err)
		assert.InDelta(t, 123.45, got, 1e-9, code)
	}
}

func TestConvertAmount_ScaleLinear(t *testing.T) {
	table := sampleTable()
	for _, amount := range []float64{0.01, 1, 7.5, 1e6} {
		single, err := ConvertAmount(table, amount, "EUR", "BRL")
		require.NoError(t, err)
		double, err := ConvertAmount(table, 2*amount, "EUR", "BRL")
		require.NoError(t, err)
		assert.InEpsilon(t, 2*single, double, 1e-12)
	}
}

func TestConvertAmount_RoundTrip(t *testing.T) {
	table := sampleTable()
	codes := table.Codes()
	for _, x := range codes {
		for _, y := range codes {
			there, err := ConvertAmount(table, 42, x, y)
			require.NoError(t, err)
			back, err := ConvertAmount(table, there, y, x)
			require.NoError(t, err)
			assert.InEpsilon(t, 42, back, 1e-9, "%s<->%s", x, y)
		}
	}
}

func TestConvertAmount_RatesUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		table *exchange.RateTable
		from  string
		to    string
	}{
		{"nil table", nil, "USD", "BRL"},
		{"empty table", exchange.NewRateTable("USD", nil), "USD", "BRL"},
		{"missing target", sampleTable(), "USD", "GBP"},
		{"missing source", sampleTable(), "JPY", "USD"},
		{"zero rate", exchange.NewRateTable("USD", map[string]float64{"USD": 1, "XXX": 0}), "XXX", "USD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertAmount(tt.table, 10, tt.from, tt.to)
			assert.ErrorIs(t, err, exchange.ErrRatesUnavailable)
		})
	}
}

func TestParseAmount(t *testing.T) {
	valid := map[string]float64{"10": 10, " 2.5 ": 2.5, "-3": -3, "1e3": 1000, "0": 0}
	for raw, want := range valid {
		got, err := ParseAmount(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, raw := range []string{"", "abc", "10abc", "NaN", "Inf", "-Infinity", "1,5"} {
		_, err := ParseAmount(raw)
		assert.ErrorIs(t, err, exchange.ErrInvalidAmount, raw)
	}
}

func TestService_Convert(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	svc := New(nil, nil, m)
	table := sampleTable()

	res, err := svc.Convert(table, exchange.ConversionRequest{Amount: "10", From: "usd", To: "brl"})
	require.NoError(t, err)
	assert.Equal(t, "USD", res.From)
	assert.Equal(t, "BRL", res.To)
	assert.InDelta(t, 50, res.Converted, 1e-9)
	assert.InDelta(t, 5, res.Rate, 1e-9)
	assert.Equal(t, "$10.00", res.FormattedAmount)
	assert.Equal(t, "R$ 50,00", res.FormattedConverted)
	assert.Equal(t, "USD", res.Base)
	assert.Equal(t, table.FetchedAt, res.RatesAsOf)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("success")), 0)
}

func TestService_Convert_ValidationOrder(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	svc := New(nil, nil, m)

	_, err := svc.Convert(nil, exchange.ConversionRequest{Amount: "abc", From: "USD", To: "BRL"})
	assert.ErrorIs(t, err, exchange.ErrInvalidAmount)
	assert.Equal(t, exchange.MessageInvalidAmount, exchange.UserMessage(err))

	_, err = svc.Convert(exchange.NewRateTable("USD", nil), exchange.ConversionRequest{Amount: "10", From: "USD", To: "BRL"})
	assert.ErrorIs(t, err, exchange.ErrRatesUnavailable)
	assert.Equal(t, exchange.MessageRatesUnavailable, exchange.UserMessage(err))

	assert.InDelta(t, 1, testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("invalid_amount")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("rates_unavailable")), 0)
}

func TestService_Convert_DoesNotMutateTable(t *testing.T) {
	svc := New(nil, nil, nil)
	table := sampleTable()
	before := table.Rates()

	_, err := svc.Convert(table, exchange.ConversionRequest{Amount: "10", From: "EUR", To: "BTC"})
	require.NoError(t, err)
	assert.Equal(t, before, table.Rates())
}
