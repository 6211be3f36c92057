package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initConsolidationMetrics() {
	r.ConsolidationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_consolidations_total",
			Help: "Total number of consolidation passes",
		},
	)

	r.ConsolidationMerges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentinel_consolidation_merges",
			Help:    "Number of nodes merged away per consolidation pass",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		},
	)

	r.ConsolidationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentinel_consolidation_duration_seconds",
			Help:    "Consolidation pass duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0},
		},
	)
}

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_graph_nodes_total",
			Help: "Number of nodes in the current graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_graph_edges_total",
			Help: "Number of edges in the current graph",
		},
	)
}

func (r *Registry) initStoreMetrics() {
	r.StoreOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_store_operations_total",
			Help: "Total number of persistence operations",
		},
		[]string{"store", "operation", "status"},
	)

	r.StoreOperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_store_operation_duration_seconds",
			Help:    "Persistence operation duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"store", "operation"},
	)
}
