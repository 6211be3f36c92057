package rules

import (
	"fmt"
	"math"

	"github.com/dd0wney/sentinel/pkg/graph"
)

// ScoreOptions configures confidence scoring. The penalty and boost factors
// are explicit configuration so they can be tuned and tested per call.
type ScoreOptions struct {
	// AIInferredPenalty multiplies the confidence once per distinct
	// ai-inferred node on the path. Must be in (0, 1].
	AIInferredPenalty float64

	// CrossDomainBoost multiplies the confidence when the path's first and
	// last entities classify into different domains. Result capped at 1.0.
	CrossDomainBoost float64

	Keywords Keywords
}

// DefaultScoreOptions returns the production scoring factors.
func DefaultScoreOptions() ScoreOptions {
	return ScoreOptions{
		AIInferredPenalty: 0.9,
		CrossDomainBoost:  1.1,
		Keywords:          DefaultKeywords(),
	}
}

// ScoreCollision converts a raw path into a probability-like confidence:
// the arithmetic mean of the path's edge confidences, discounted by
// AIInferredPenalty for every distinct ai-inferred node touched. Inferred
// facts are trusted less than what the user actually said.
//
// The rendered path walks the edges emitting source label, relationship,
// ..., final target label. Labels of dangling node IDs are skipped.
func ScoreCollision(path CollisionPath, g *graph.Graph, opts ScoreOptions) graph.ScoredCollision {
	sum := 0.0
	for _, e := range path.Edges {
		sum += e.Confidence
	}
	avg := sum / float64(len(path.Edges))

	nodeIDs := make(map[string]bool, len(path.Edges)+1)
	for _, e := range path.Edges {
		nodeIDs[e.SourceID] = true
		nodeIDs[e.TargetID] = true
	}

	index := g.NodeIndex()
	aiInferred, userStated := 0, 0
	for id := range nodeIDs {
		node, ok := index[id]
		if !ok {
			continue
		}
		if node.Source == graph.SourceAIInferred {
			aiInferred++
		} else {
			userStated++
		}
	}

	confidence := avg * math.Pow(opts.AIInferredPenalty, float64(aiInferred))

	var labels []string
	appended := make(map[string]bool)
	for _, e := range path.Edges {
		if source, ok := index[e.SourceID]; ok && !appended[source.Label] {
			labels = append(labels, source.Label)
			appended[source.Label] = true
		}
		labels = append(labels, e.Relationship)
	}
	if target, ok := index[path.EndNode()]; ok {
		labels = append(labels, target.Label)
	}

	return graph.ScoredCollision{
		Path:       labels,
		Confidence: confidence,
		SourceBreakdown: map[string]int{
			"ai_inferred": aiInferred,
			"user_stated": userStated,
		},
	}
}

// ScoreCollisionWithDomains scores like ScoreCollision and then classifies
// the path's first and last entities. When the two domains differ the
// collision crosses a life-context boundary, which is judged more impactful:
// the confidence is multiplied by CrossDomainBoost (capped at 1.0) and both
// entity labels in the rendered path receive a "[DOMAIN] " prefix.
//
// If either endpoint is a dangling reference the base score is returned
// unchanged.
func ScoreCollisionWithDomains(path CollisionPath, g *graph.Graph, opts ScoreOptions) graph.ScoredCollision {
	base := ScoreCollision(path, g, opts)

	start := g.NodeByID(path.StartNode())
	end := g.NodeByID(path.EndNode())
	if start == nil || end == nil || len(base.Path) == 0 {
		return base
	}

	startDomain := ClassifyDomain(start.Label, start.Metadata, opts.Keywords)
	endDomain := ClassifyDomain(end.Label, end.Metadata, opts.Keywords)

	enhanced := make([]string, len(base.Path))
	copy(enhanced, base.Path)
	enhanced[0] = fmt.Sprintf("[%s] %s", startDomain, enhanced[0])
	if len(enhanced) > 1 {
		last := len(enhanced) - 1
		enhanced[last] = fmt.Sprintf("[%s] %s", endDomain, enhanced[last])
	}

	confidence := base.Confidence
	if startDomain != endDomain {
		confidence = math.Min(1.0, confidence*opts.CrossDomainBoost)
	}

	return graph.ScoredCollision{
		Path:            enhanced,
		Confidence:      confidence,
		SourceBreakdown: base.SourceBreakdown,
	}
}
