package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.Predictions.WithLabelValues("success").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Predictions.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Predictions.WithLabelValues("success")))
}

func TestMetrics_RegisterOnFreshRegistry(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()

	require.NoError(t, reg.Register(m.Predictions))
	require.NoError(t, reg.Register(m.PredictionDuration))
	require.NoError(t, reg.Register(m.ArtifactsLoaded))
	require.NoError(t, reg.Register(m.HistoryWrites))
	require.NoError(t, reg.Register(m.HistoryPruned))

	m.ArtifactsLoaded.Set(1)
	m.PredictionDuration.Observe(0.002)
	m.HistoryPruned.Add(3)
	m.HistoryWrites.WithLabelValues("ok").Inc()

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.HistoryPruned))
}
