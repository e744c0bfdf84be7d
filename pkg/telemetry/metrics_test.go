package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetricsCountByKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg)

	m.QuestionCreated("discrete")
	m.QuestionCreated("discrete")
	m.AnswerSubmitted("range")
	m.StatsComputed("range", 15*time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(m.questionsCreated.WithLabelValues("discrete")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.answersSubmitted.WithLabelValues("range")))
	require.Equal(t, 1, testutil.CollectAndCount(m.statsLatency))
}

func TestEnsureFallsBackToNop(t *testing.T) {
	require.IsType(t, NopMetrics{}, Ensure(nil))
	m := NewPrometheusMetrics(prometheus.NewRegistry())
	require.Same(t, m, Ensure(m))
}

func TestSpanHelpersTolerateGlobalNoopTracer(t *testing.T) {
	_, span := StartQuestionSpan(context.Background(), nil, "polls.test", uuid.New())
	SetKind(span, "discrete")
	EndSpan(span, errors.New("boom"))
	require.False(t, span.IsRecording())
}
