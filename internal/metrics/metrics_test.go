package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/reapi-client/internal/metrics"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()

	t.Run("registers collectors", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		m, err := metrics.NewMetrics(reg)
		require.NoError(t, err)
		require.NotNil(t, m)

		m.ObserveRequest("GET", metrics.OutcomeOK, 10*time.Millisecond)
		m.ObserveRequest("GET", "not-found", 5*time.Millisecond)
		m.ObserveRequest("GET", metrics.OutcomeOK, time.Millisecond)
		m.ObserveStreamItem("watch", metrics.OutcomeOK)

		assert.InDelta(t, 2, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "ok")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "not-found")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.StreamItemsTotal.WithLabelValues("watch", "ok")), 0)
		assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
	})

	t.Run("nil registerer disables metrics", func(t *testing.T) {
		t.Parallel()

		m, err := metrics.NewMetrics(nil)
		require.NoError(t, err)
		assert.Nil(t, m)

		assert.NotPanics(t, func() {
			m.ObserveRequest("GET", metrics.OutcomeOK, time.Millisecond)
			m.ObserveStreamItem("cursor", metrics.OutcomeOK)
		})
	})

	t.Run("shared registerer reuses collectors", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()

		first, err := metrics.NewMetrics(reg)
		require.NoError(t, err)

		second, err := metrics.NewMetrics(reg)
		require.NoError(t, err)

		assert.Same(t, first.RequestsTotal, second.RequestsTotal)
		assert.Same(t, first.RequestDuration, second.RequestDuration)
		assert.Same(t, first.StreamItemsTotal, second.StreamItemsTotal)

		first.ObserveRequest("GET", metrics.OutcomeOK, time.Millisecond)
		second.ObserveRequest("GET", metrics.OutcomeOK, time.Millisecond)

		assert.InDelta(t, 2, testutil.ToFloat64(first.RequestsTotal.WithLabelValues("GET", "ok")), 0)
	})

	t.Run("conflicting collector is an error", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		reg.MustRegister(prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reapi",
			Name:      "requests_total",
			Help:      "Something else.",
		}, []string{"path"}))

		m, err := metrics.NewMetrics(reg)
		require.Error(t, err)
		assert.Nil(t, m)
	})
}
