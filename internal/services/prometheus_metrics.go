package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	categorizationOutcomes *prometheus.CounterVec
	categorizationDuration prometheus.Histogram
	reapplicationWrites    *prometheus.CounterVec
	classifierCalls        *prometheus.CounterVec
	suggestionOutcomes     *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		categorizationOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "categorization_transactions_total",
				Help: "Total number of transactions seen by categorization runs",
			},
			[]string{"mode", "outcome"},
		),
		categorizationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "categorization_run_duration_milliseconds",
				Help:    "Categorization run duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		reapplicationWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reapplication_writes_total",
				Help: "Total number of transactions rewritten by rule reapplication",
			},
			[]string{"status"},
		),
		classifierCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "classifier_calls_total",
				Help: "Total number of classifier chunk calls",
			},
			[]string{"status"},
		),
		suggestionOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "suggestion_outcomes_total",
				Help: "Total number of suggestion proposals by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordCategorization records the outcome counts of one categorization run
func (m *PrometheusMetrics) RecordCategorization(mode string, matched, unmapped int) {
	m.categorizationOutcomes.WithLabelValues(mode, "matched").Add(float64(matched))
	m.categorizationOutcomes.WithLabelValues(mode, "unmapped").Add(float64(unmapped))
}

// RecordCategorizationDuration records how long a categorization run took
func (m *PrometheusMetrics) RecordCategorizationDuration(duration time.Duration) {
	m.categorizationDuration.Observe(float64(duration.Milliseconds()))
}

// RecordReapplication records transactions rewritten by a reapplication run
func (m *PrometheusMetrics) RecordReapplication(status string, written int) {
	m.reapplicationWrites.WithLabelValues(status).Add(float64(written))
}

// RecordClassifierCall records one classifier chunk call
func (m *PrometheusMetrics) RecordClassifierCall(status string) {
	m.classifierCalls.WithLabelValues(status).Inc()
}

// RecordSuggestionOutcome records proposal outcomes (proposed, accepted,
// rejected)
func (m *PrometheusMetrics) RecordSuggestionOutcome(outcome string, count int) {
	m.suggestionOutcomes.WithLabelValues(outcome).Add(float64(count))
}
