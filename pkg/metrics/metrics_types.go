package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Detection Metrics
	TraversalsTotal       *prometheus.CounterVec
	TraversalDuration     prometheus.Histogram
	TraversalTimeouts     prometheus.Counter
	RelationshipsAnalyzed prometheus.Histogram
	CollisionsFound       prometheus.Histogram
	CollisionConfidence   prometheus.Histogram

	// Consolidation Metrics
	ConsolidationsTotal   prometheus.Counter
	ConsolidationMerges   prometheus.Histogram
	ConsolidationDuration prometheus.Histogram

	// Graph Metrics
	GraphNodesTotal prometheus.Gauge
	GraphEdgesTotal prometheus.Gauge

	// Store Metrics
	StoreOperationsTotal   *prometheus.CounterVec
	StoreOperationDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initDetectionMetrics()
	r.initConsolidationMetrics()
	r.initGraphMetrics()
	r.initStoreMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
