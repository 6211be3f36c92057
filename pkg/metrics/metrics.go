// Package metrics exposes sentinel's Prometheus instrumentation behind a
// single registry so callers never touch metric vectors directly.
package metrics

import (
	"time"
)

// RecordTraversal records one traversal run.
func (r *Registry) RecordTraversal(mode string, timedOut bool, duration time.Duration, relationshipsAnalyzed int) {
	status := "ok"
	if timedOut {
		status = "timeout"
		r.TraversalTimeouts.Inc()
	}
	r.TraversalsTotal.WithLabelValues(mode, status).Inc()
	r.TraversalDuration.Observe(duration.Seconds())
	r.RelationshipsAnalyzed.Observe(float64(relationshipsAnalyzed))
}

// RecordDetection records the outcome of a full detection run.
func (r *Registry) RecordDetection(collisions int, confidences []float64) {
	r.CollisionsFound.Observe(float64(collisions))
	for _, c := range confidences {
		r.CollisionConfidence.Observe(c)
	}
}

// RecordConsolidation records one consolidation pass.
func (r *Registry) RecordConsolidation(merged int, duration time.Duration) {
	r.ConsolidationsTotal.Inc()
	r.ConsolidationMerges.Observe(float64(merged))
	r.ConsolidationDuration.Observe(duration.Seconds())
}

// SetGraphSize updates the graph size gauges.
func (r *Registry) SetGraphSize(nodes, edges int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
}

// RecordStoreOperation records a persistence operation.
func (r *Registry) RecordStoreOperation(store, operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.StoreOperationsTotal.WithLabelValues(store, operation, status).Inc()
	r.StoreOperationDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
}
