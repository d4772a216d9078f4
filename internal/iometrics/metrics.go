// Package iometrics provides Prometheus instruments of herbdb.
// All methods are safe to call on a nil *Metrics.
package iometrics

import (
	"net/http"
	"time"

	"github.com/herbolive/herbdb/pkg/plant"
	"github.com/herbolive/herbdb/pkg/translate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "herbdb"

// Outcomes of a source request.
const (
	SourceHit   = "hit"
	SourceMiss  = "miss"
	SourceError = "error"
)

// Outcomes of an upserted record.
const (
	UpsertInserted = "inserted"
	UpsertUpdated  = "updated"
	UpsertFailed   = "failed"
)

// Metrics holds the instruments registered on its own registry.
type Metrics struct {
	reg *prometheus.Registry

	sourceRequests *prometheus.CounterVec
	sourceDuration *prometheus.HistogramVec
	upserts        *prometheus.CounterVec
	translations   *prometheus.CounterVec
}

// New creates instruments on a new registry. Go runtime and process
// collectors are registered as well.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		sourceRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "requests_total",
				Help:      "Total number of source lookups by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		sourceDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "request_duration_seconds",
				Help:      "Duration of source lookups in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
			},
			[]string{"source"},
		),
		upserts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "upserts_total",
				Help:      "Total number of upserted records by outcome",
			},
			[]string{"outcome"},
		),
		translations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "translate",
				Name:      "lookups_total",
				Help:      "Total number of translation lookups by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Registry returns the registry of the instruments.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveSource counts a source lookup.
func (m *Metrics) ObserveSource(src plant.Source, outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.sourceRequests.WithLabelValues(string(src), outcome).Inc()
	m.sourceDuration.WithLabelValues(string(src)).Observe(dur.Seconds())
}

// AddUpserts counts upserted records.
func (m *Metrics) AddUpserts(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.upserts.WithLabelValues(outcome).Add(float64(n))
}

// ObserveTranslation counts a translation lookup.
func (m *Metrics) ObserveTranslation(o translate.Outcome) {
	if m == nil {
		return
	}
	m.translations.WithLabelValues(string(o)).Inc()
}
