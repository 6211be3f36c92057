package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStoreOperation(t *testing.T) {
	r := NewRegistry()

	r.RecordStoreOperation("graph", "load", nil, 5*time.Millisecond)
	r.RecordStoreOperation("graph", "load", nil, 3*time.Millisecond)
	r.RecordStoreOperation("graph", "save", errors.New("disk full"), time.Millisecond)

	assert.Equal(t, float64(2),
		testutil.ToFloat64(r.StoreOperationsTotal.WithLabelValues("graph", "load", "ok")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(r.StoreOperationsTotal.WithLabelValues("graph", "save", "error")))
}

func TestRecordTraversal(t *testing.T) {
	r := NewRegistry()

	r.RecordTraversal("async", false, 10*time.Millisecond, 42)
	r.RecordTraversal("async", true, 5*time.Second, 10000)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(r.TraversalsTotal.WithLabelValues("async", "ok")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(r.TraversalsTotal.WithLabelValues("async", "timeout")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.TraversalTimeouts))
}

func TestRecordConsolidation(t *testing.T) {
	r := NewRegistry()

	r.RecordConsolidation(3, 2*time.Millisecond)
	r.RecordConsolidation(0, time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(r.ConsolidationsTotal))
}

func TestSetGraphSize(t *testing.T) {
	r := NewRegistry()

	r.SetGraphSize(12, 30)
	assert.Equal(t, float64(12), testutil.ToFloat64(r.GraphNodesTotal))
	assert.Equal(t, float64(30), testutil.ToFloat64(r.GraphEdgesTotal))
}

func TestDefaultRegistryIsSingleton(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}
