// Package telemetry carries the tracing and metrics hooks used by the polls
// commands and queries.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records domain counters. Labels are question kinds.
type Metrics interface {
	QuestionCreated(kind string)
	AnswerSubmitted(kind string)
	StatsComputed(kind string, elapsed time.Duration)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

// QuestionCreated implements Metrics.
func (NopMetrics) QuestionCreated(string) {}

// AnswerSubmitted implements Metrics.
func (NopMetrics) AnswerSubmitted(string) {}

// StatsComputed implements Metrics.
func (NopMetrics) StatsComputed(string, time.Duration) {}

// PrometheusMetrics implements Metrics with Prometheus collectors.
type PrometheusMetrics struct {
	questionsCreated *prometheus.CounterVec
	answersSubmitted *prometheus.CounterVec
	statsLatency     *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the polls collectors with reg. A nil
// registerer falls back to the global default registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		questionsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polls_questions_created_total",
				Help: "Questions created, by question kind.",
			},
			[]string{"kind"},
		),
		answersSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polls_answers_submitted_total",
				Help: "Answers stored, by question kind.",
			},
			[]string{"kind"},
		),
		statsLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polls_stats_duration_seconds",
				Help:    "Time spent loading and aggregating question statistics.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
	}
}

// QuestionCreated implements Metrics.
func (m *PrometheusMetrics) QuestionCreated(kind string) {
	m.questionsCreated.WithLabelValues(kind).Inc()
}

// AnswerSubmitted implements Metrics.
func (m *PrometheusMetrics) AnswerSubmitted(kind string) {
	m.answersSubmitted.WithLabelValues(kind).Inc()
}

// StatsComputed implements Metrics.
func (m *PrometheusMetrics) StatsComputed(kind string, elapsed time.Duration) {
	m.statsLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// Ensure returns m or a NopMetrics when m is nil.
func Ensure(m Metrics) Metrics {
	if m == nil {
		return NopMetrics{}
	}
	return m
}
