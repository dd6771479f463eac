package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles Prometheus collectors for normalization and loading.
type Metrics struct {
	Registry          *prometheus.Registry
	RecordsTotal      *prometheus.CounterVec
	DefaultsTotal     *prometheus.CounterVec
	MalformedDates    prometheus.Counter
	RowsLoadedTotal   *prometheus.CounterVec
	LoadRunsTotal     *prometheus.CounterVec
	LoadDuration      prometheus.Histogram
	ReportCacheLookup *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	records := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_records_normalized_total",
			Help: "Total input records turned into rows.",
		},
		[]string{"kind"},
	)
	defaults := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_field_defaults_total",
			Help: "Optional fields that were absent or malformed and received their default.",
		},
		[]string{"kind", "field"},
	)
	malformedDates := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_malformed_review_dates_total",
			Help: "Review timestamps that were present but could not be parsed.",
		},
	)
	rowsLoaded := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_rows_loaded_total",
			Help: "Rows committed to the relational store.",
		},
		[]string{"table"},
	)
	loadRuns := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_load_runs_total",
			Help: "Finished load runs by outcome.",
		},
		[]string{"status"},
	)
	loadDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Wall time of finished load runs, completed or failed.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		},
	)
	cacheLookups := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_report_cache_lookups_total",
			Help: "Report cache lookups by result.",
		},
		[]string{"result"},
	)

	registry.MustRegister(records, defaults, malformedDates, rowsLoaded, loadRuns, loadDuration, cacheLookups)

	return &Metrics{
		Registry:          registry,
		RecordsTotal:      records,
		DefaultsTotal:     defaults,
		MalformedDates:    malformedDates,
		RowsLoadedTotal:   rowsLoaded,
		LoadRunsTotal:     loadRuns,
		LoadDuration:      loadDuration,
		ReportCacheLookup: cacheLookups,
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// IncRecord counts one normalized record of the given kind.
func (m *Metrics) IncRecord(kind string) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(kind).Inc()
}

// IncDefaults counts each field that fell back to its default.
func (m *Metrics) IncDefaults(kind string, fields []string) {
	if m == nil {
		return
	}
	for _, field := range fields {
		m.DefaultsTotal.WithLabelValues(kind, field).Inc()
	}
}

// IncMalformedDate counts an unparseable review timestamp.
func (m *Metrics) IncMalformedDate() {
	if m == nil {
		return
	}
	m.MalformedDates.Inc()
}

// AddRowsLoaded counts committed rows for a table.
func (m *Metrics) AddRowsLoaded(table string, n int) {
	if m == nil {
		return
	}
	m.RowsLoadedTotal.WithLabelValues(table).Add(float64(n))
}

// ObserveLoad records the outcome and duration of a load run.
func (m *Metrics) ObserveLoad(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.LoadRunsTotal.WithLabelValues(status).Inc()
	m.LoadDuration.Observe(d.Seconds())
}

// IncCacheLookup counts a report cache hit or miss.
func (m *Metrics) IncCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ReportCacheLookup.WithLabelValues(result).Inc()
}
