package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDetectionMetrics() {
	r.TraversalsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_traversals_total",
			Help: "Total number of collision traversals executed",
		},
		[]string{"mode", "status"},
	)

	r.TraversalDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentinel_traversal_duration_seconds",
			Help:    "Collision traversal duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 15.0},
		},
	)

	r.TraversalTimeouts = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_traversal_timeouts_total",
			Help: "Total number of traversals that hit the hop deadline",
		},
	)

	r.RelationshipsAnalyzed = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentinel_relationships_analyzed",
			Help:    "Number of relationships examined per traversal",
			Buckets: []float64{10, 100, 1000, 10000, 100000},
		},
	)

	r.CollisionsFound = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentinel_collisions_found",
			Help:    "Number of collisions reported per detection run",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		},
	)

	r.CollisionConfidence = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentinel_collision_confidence",
			Help:    "Confidence scores of reported collisions",
			Buckets: []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.0},
		},
	)
}
