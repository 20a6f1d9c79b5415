package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCountsByStatus(t *testing.T) {
	m := New("test", prometheus.NewRegistry())

	m.Observe("list", time.Now(), nil)
	m.Observe("list", time.Now(), nil)
	m.Observe("list", time.Now(), errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("list", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("list", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.OperationDuration))
}

func TestObserveBatch(t *testing.T) {
	m := New("test", prometheus.NewRegistry())

	m.ObserveBatch(3)
	m.ObserveBatch(12)

	assert.Equal(t, 1, testutil.CollectAndCount(m.MediaBatchSize))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe("get_by_id", time.Now(), nil)
		m.ObserveBatch(2)
	})
}
