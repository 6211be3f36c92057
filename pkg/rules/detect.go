package rules

import (
	"sort"
	"strings"

	"github.com/dd0wney/sentinel/pkg/graph"
)

// IsValidCollision filters false positives out of raw path matches:
// the path must carry the full collision pattern over at least three edges,
// start and end on different nodes, start at a Person or Activity, and its
// REQUIRES edge must originate from an Activity. Nodes the graph does not
// know (dangling references) are given the benefit of the doubt.
func IsValidCollision(path CollisionPath, g *graph.Graph) bool {
	if len(path.Edges) < 3 || !path.MatchesCollisionPattern() {
		return false
	}
	if path.StartNode() == path.EndNode() {
		return false
	}

	index := g.NodeIndex()

	if start, ok := index[path.StartNode()]; ok {
		if start.Type != graph.TypePerson && start.Type != graph.TypeActivity {
			return false
		}
	}

	for _, e := range path.Edges {
		if e.Relationship != graph.RelRequires {
			continue
		}
		if source, ok := index[e.SourceID]; ok && source.Type != graph.TypeActivity {
			return false
		}
		break
	}

	return true
}

// DeduplicateCollisions collapses collisions with identical rendered paths,
// keeping the highest confidence. First-seen order is preserved.
func DeduplicateCollisions(collisions []graph.ScoredCollision) []graph.ScoredCollision {
	best := make(map[string]int, len(collisions))
	deduped := make([]graph.ScoredCollision, 0, len(collisions))

	for _, c := range collisions {
		key := strings.Join(c.Path, "\x1f")
		if i, seen := best[key]; seen {
			if c.Confidence > deduped[i].Confidence {
				deduped[i] = c
			}
			continue
		}
		best[key] = len(deduped)
		deduped = append(deduped, c)
	}
	return deduped
}

// DetectOptions bundles the tunables of the full detection pipeline.
type DetectOptions struct {
	Find  FindOptions
	Score ScoreOptions
}

// DefaultDetectOptions returns the production pipeline configuration.
func DefaultDetectOptions() DetectOptions {
	return DetectOptions{
		Find:  DefaultFindOptions(),
		Score: DefaultScoreOptions(),
	}
}

// DetectCollisions is the full synchronous pipeline: find candidate paths,
// drop false positives, score with domain awareness, deduplicate, and
// stable-sort by confidence descending.
func DetectCollisions(g *graph.Graph, opts DetectOptions) ([]graph.ScoredCollision, error) {
	paths, err := FindCollisionPaths(g, opts.Find)
	if err != nil {
		return nil, err
	}

	var collisions []graph.ScoredCollision
	for _, p := range paths {
		if !IsValidCollision(p, g) {
			continue
		}
		collisions = append(collisions, ScoreCollisionWithDomains(p, g, opts.Score))
	}

	collisions = DeduplicateCollisions(collisions)
	sort.SliceStable(collisions, func(i, j int) bool {
		return collisions[i].Confidence > collisions[j].Confidence
	})
	return collisions, nil
}

// FilterByConfidence keeps collisions at or above min, preserving order.
// Threshold filtering belongs to the consumer, not the engine, which is why
// DetectCollisions never applies it.
func FilterByConfidence(collisions []graph.ScoredCollision, min float64) []graph.ScoredCollision {
	filtered := make([]graph.ScoredCollision, 0, len(collisions))
	for _, c := range collisions {
		if c.Confidence >= min {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
