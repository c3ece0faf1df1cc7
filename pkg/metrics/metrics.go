package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the converter's Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	FetchesTotal     *prometheus.CounterVec
	FetchDuration    *prometheus.HistogramVec
	RatesInTable     prometheus.Gauge
	LastUpdate       prometheus.Gauge
	ConversionsTotal *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxconvert_rate_fetches_total",
				Help: "Rate fetches by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxconvert_rate_fetch_duration_seconds",
				Help:    "Time spent fetching rates from a source",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		RatesInTable: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fxconvert_rates_in_table",
				Help: "Number of currencies in the current rate table",
			},
		),
		LastUpdate: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fxconvert_rate_table_last_update_timestamp_seconds",
				Help: "Unix time the current rate table was published",
			},
		),
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxconvert_conversions_total",
				Help: "Conversions by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveFetch records one fetch from source.
func (m *Metrics) ObserveFetch(source string, err error, took time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.FetchesTotal.WithLabelValues(source, outcome).Inc()
	m.FetchDuration.WithLabelValues(source).Observe(took.Seconds())
}

// ObserveTable records the size and publication time of a rate table.
func (m *Metrics) ObserveTable(size int, published time.Time) {
	if m == nil {
		return
	}
	m.RatesInTable.Set(float64(size))
	m.LastUpdate.Set(float64(published.Unix()))
}

// ObserveConversion records one conversion outcome,
// e.g. "success", "invalid_amount", "rates_unavailable".
func (m *Metrics) ObserveConversion(outcome string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(outcome).Inc()
}
