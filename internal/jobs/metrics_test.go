package jobmetrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecordsOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	require.NoError(t, m.Track("snapshot").End(nil))
	boom := errors.New("boom")
	assert.ErrorIs(t, m.Track("snapshot").End(boom), boom)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("snapshot", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("snapshot", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("snapshot")))
	assert.Positive(t, testutil.ToFloat64(m.lastSuccess.WithLabelValues("snapshot")))
}

func TestNilMetricsTrackerIsNoop(t *testing.T) {
	var m *Metrics
	boom := errors.New("boom")
	assert.ErrorIs(t, m.Track("snapshot").End(boom), boom)
}
