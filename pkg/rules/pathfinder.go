package rules

import (
	"fmt"

	"github.com/dd0wney/sentinel/pkg/graph"
)

// CollisionPath is one walk through the graph that may describe an energy
// collision.
type CollisionPath struct {
	Edges []graph.Edge
}

// StartNode returns the source node ID of the first edge.
func (p CollisionPath) StartNode() string {
	return p.Edges[0].SourceID
}

// EndNode returns the target node ID of the last edge.
func (p CollisionPath) EndNode() string {
	return p.Edges[len(p.Edges)-1].TargetID
}

// MatchesCollisionPattern reports whether the path's relationship tags,
// taken as a set, cover DRAINS, CONFLICTS_WITH and REQUIRES. Order is
// irrelevant because traversal follows edges in both directions.
func (p CollisionPath) MatchesCollisionPattern() bool {
	if len(p.Edges) < 3 {
		return false
	}
	relations := make(map[string]bool, len(p.Edges))
	for _, e := range p.Edges {
		relations[e.Relationship] = true
	}
	return relations[graph.RelDrains] &&
		relations[graph.RelConflictsWith] &&
		relations[graph.RelRequires]
}

// FindOptions configures the synchronous path search.
type FindOptions struct {
	// MaxDepth is the path length at which candidates are tested against
	// the collision pattern; shorter paths keep extending. Must be >= 1.
	MaxDepth int
}

// DefaultFindOptions returns the production search depth.
func DefaultFindOptions() FindOptions {
	return FindOptions{MaxDepth: 3}
}

type bfsEntry struct {
	nodeID string
	path   []graph.Edge
}

// buildAdjacency records every edge against both endpoints so BFS can walk
// the graph undirected while each edge keeps its stored direction.
func buildAdjacency(g *graph.Graph) map[string][]graph.Edge {
	adjacency := make(map[string][]graph.Edge)
	for _, e := range g.Edges {
		adjacency[e.SourceID] = append(adjacency[e.SourceID], e)
		adjacency[e.TargetID] = append(adjacency[e.TargetID], e)
	}
	return adjacency
}

// FindCollisionPaths locates candidate collision patterns. Every DRAINS
// edge seeds a breadth-first search with a per-seed visited set (both DRAINS
// endpoints pre-marked) that guarantees termination on cyclic graphs. Paths
// reaching MaxDepth are tested against the collision pattern; the search
// continues level by level rather than stopping at the first match.
//
// Overlapping matches reached from different seeds are all reported; the
// detection pipeline deduplicates after scoring.
func FindCollisionPaths(g *graph.Graph, opts FindOptions) ([]CollisionPath, error) {
	if opts.MaxDepth < 1 {
		return nil, fmt.Errorf("%w: MaxDepth must be >= 1, got %d", graph.ErrInvalidDepth, opts.MaxDepth)
	}

	var paths []CollisionPath
	if len(g.Edges) == 0 {
		return paths, nil
	}

	adjacency := buildAdjacency(g)

	for _, seed := range g.Edges {
		if seed.Relationship != graph.RelDrains {
			continue
		}

		visited := map[string]bool{seed.SourceID: true, seed.TargetID: true}
		queue := []bfsEntry{{nodeID: seed.TargetID, path: []graph.Edge{seed}}}

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			if len(current.path) >= opts.MaxDepth {
				candidate := CollisionPath{Edges: current.path}
				if candidate.MatchesCollisionPattern() {
					paths = append(paths, candidate)
				}
				continue
			}

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
			}
		}
	}

	return paths, nil
}
