package rules

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/logging"
)

// TraversalResult reports the outcome of a bounded traversal. TimedOut is a
// first-class flag, not an error: partial paths collected before the budget
// expired are always returned.
type TraversalResult struct {
	Paths                 []CollisionPath
	TimedOut              bool
	RelationshipsAnalyzed int
}

// TraversalOptions configures the cancellable path search.
type TraversalOptions struct {
	// MaxDepth is the path length at which candidates are tested against
	// the collision pattern. Must be >= 1.
	MaxDepth int

	// HopTimeout bounds each queue-pop-and-expand step. A hop that runs
	// past its budget aborts the current seed and stops the whole search.
	HopTimeout time.Duration

	// Progress, when set, is invoked with the running relationship count
	// after each newly discovered edge.
	Progress func(analyzed int)

	Logger logging.Logger
}

// DefaultTraversalOptions returns the production traversal budget.
func DefaultTraversalOptions() TraversalOptions {
	return TraversalOptions{
		MaxDepth:   3,
		HopTimeout: 5 * time.Second,
	}
}

// FindCollisionPathsAsync runs the same seed/BFS logic as
// FindCollisionPaths with hop-granular cancellation: every hop is checked
// against its own deadline and against ctx. When either fires, the current
// seed is abandoned, no further seeds are attempted, and whatever paths were
// already matched are returned with TimedOut set.
//
// All traversal state is local to the call, so concurrent traversals over
// different graphs need no locking.
func FindCollisionPathsAsync(ctx context.Context, g *graph.Graph, opts TraversalOptions) (TraversalResult, error) {
	if opts.MaxDepth < 1 {
		return TraversalResult{}, fmt.Errorf("%w: MaxDepth must be >= 1, got %d", graph.ErrInvalidDepth, opts.MaxDepth)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	result := TraversalResult{}
	if len(g.Edges) == 0 {
		return result, nil
	}

	adjacency := buildAdjacency(g)

	report := func() {
		if opts.Progress != nil {
			opts.Progress(result.RelationshipsAnalyzed)
		}
	}

seeds:
	for _, seed := range g.Edges {
		if seed.Relationship != graph.RelDrains {
			continue
		}

		visited := map[string]bool{seed.SourceID: true, seed.TargetID: true}
		queue := []bfsEntry{{nodeID: seed.TargetID, path: []graph.Edge{seed}}}
		result.RelationshipsAnalyzed++
		report()

		for len(queue) > 0 {
			hopStart := time.Now()

			current := queue[0]
			queue = queue[1:]

			if len(current.path) >= opts.MaxDepth {
				candidate := CollisionPath{Edges: current.path}
				if candidate.MatchesCollisionPattern() {
					result.Paths = append(result.Paths, candidate)
				}
			} else {
				for _, edge := range adjacency[current.nodeID] {
					next := edge.TargetID
					if edge.SourceID != current.nodeID {
						next = edge.SourceID
					}
					if visited[next] {
						continue
					}
					visited[next] = true

					extended := make([]graph.Edge, len(current.path)+1)
					copy(extended, current.path)
					extended[len(current.path)] = edge
					queue = append(queue, bfsEntry{nodeID: next, path: extended})

					result.RelationshipsAnalyzed++
					report()
				}
			}

			// Hop-granular cancellation: the finished hop's matches are
			// kept, then the deadline is enforced before the next hop.
			if ctx.Err() != nil || time.Since(hopStart) >= opts.HopTimeout {
				logger.Warn("traversal timed out",
					logging.RelationshipsAnalyzed(result.RelationshipsAnalyzed))
				result.TimedOut = true
				break seeds
			}
		}
	}

	return result, nil
}
