// Package monitoring handles Prometheus metrics for the workflow engine.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger *zap.Logger

	// Workflow metrics
	runsTotal      *prometheus.CounterVec
	stageDuration  *prometheus.HistogramVec
	fallbacksTotal *prometheus.CounterVec

	// Provider metrics
	searchQueriesTotal *prometheus.CounterVec
}

// NewMetricsCollector creates a new metrics collector registered against reg.
// Tests pass a fresh prometheus.NewRegistry to avoid duplicate registration.
func NewMetricsCollector(reg prometheus.Registerer, logger *zap.Logger) *MetricsCollector {
	factory := promauto.With(reg)

	return &MetricsCollector{
		logger: logger,

		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_runs_total",
				Help: "Total number of workflow runs by outcome",
			},
			[]string{"outcome"},
		),
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "workflow_stage_duration_seconds",
				Help:    "Workflow stage duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"stage"},
		),
		fallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_fallbacks_total",
				Help: "Total number of stage fallbacks to locally synthesized content",
			},
			[]string{"stage"},
		),
		searchQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_search_queries_total",
				Help: "Total number of search queries by result",
			},
			[]string{"result"},
		),
	}
}

// RecordRun records a finished run with its outcome
// ("completed", "failed", or "validation_failed").
func (m *MetricsCollector) RecordRun(outcome string) {
	m.runsTotal.WithLabelValues(outcome).Inc()
}

// RecordStageDuration records the wall-clock duration of one stage.
func (m *MetricsCollector) RecordStageDuration(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordFallback records a stage falling back to local content.
func (m *MetricsCollector) RecordFallback(stage string) {
	m.fallbacksTotal.WithLabelValues(stage).Inc()
}

// RecordSearchQuery records one search query outcome
// ("ok", "error", or "auth_error").
func (m *MetricsCollector) RecordSearchQuery(result string) {
	m.searchQueriesTotal.WithLabelValues(result).Inc()
}

// Handler returns the HTTP handler exposing the metrics endpoint.
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}
