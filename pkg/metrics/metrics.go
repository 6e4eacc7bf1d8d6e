// Package metrics defines the Prometheus metric collectors used across the
// engine and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the engine.
type Metrics struct {
	DocsIndexedTotal    prometheus.Counter
	TokensConsumedTotal prometheus.Counter
	DuplicateDocsTotal  prometheus.Counter
	VocabularySize      prometheus.Gauge
	BuildSeconds        prometheus.Gauge
	QueriesTotal        *prometheus.CounterVec
	QueryLatency        prometheus.Histogram
	QueryResultsCount   prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_indexed_total",
				Help: "Total documents added to the direct index.",
			},
		),
		TokensConsumedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tokens_consumed_total",
				Help: "Total token occurrences consumed by the index builder.",
			},
		),
		DuplicateDocsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "duplicate_doc_ids_total",
				Help: "Duplicate doc_id anomalies observed during a build.",
			},
		),
		VocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "vocabulary_size",
				Help: "Distinct terms in the inverted index after the last build.",
			},
		),
		BuildSeconds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_build_seconds",
				Help: "Wall-clock duration of the last full index build.",
			},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total boolean queries by result type (hit, zero_result).",
			},
			[]string{"result_type"},
		),
		QueryLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Boolean query evaluation latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		QueryResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per boolean query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500},
			},
		),
	}

	prometheus.MustRegister(
		m.DocsIndexedTotal,
		m.TokensConsumedTotal,
		m.DuplicateDocsTotal,
		m.VocabularySize,
		m.BuildSeconds,
		m.QueriesTotal,
		m.QueryLatency,
		m.QueryResultsCount,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
