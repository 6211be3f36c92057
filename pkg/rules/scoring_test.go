package rules

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/dd0wney/sentinel/pkg/graph"
)

func collisionPath(g *graph.Graph) CollisionPath {
	return CollisionPath{Edges: g.Edges[:3]}
}

func TestScoreCollision(t *testing.T) {
	g := collisionGraph()
	scored := ScoreCollision(collisionPath(g), g, DefaultScoreOptions())

	// Mean confidence 0.85 over 3 ai-inferred nodes: 0.85 * 0.9^3.
	assert.InDelta(t, 0.61965, scored.Confidence, 1e-9)

	assert.Equal(t, []string{
		"Team dinner", graph.RelDrains,
		"Social energy", graph.RelConflictsWith,
		"Client presentation", graph.RelRequires,
		"Deep focus",
	}, scored.Path)

	assert.Equal(t, 3, scored.SourceBreakdown["ai_inferred"])
	assert.Equal(t, 1, scored.SourceBreakdown["user_stated"])
}

func TestScoreCollisionPenaltyMonotonic(t *testing.T) {
	g := collisionGraph()
	opts := DefaultScoreOptions()

	mixed := ScoreCollision(collisionPath(g), g, opts)

	// Promote every node to user-stated: the discount disappears.
	for i := range g.Nodes {
		g.Nodes[i].Source = graph.SourceUserStated
	}
	trusted := ScoreCollision(collisionPath(g), g, opts)

	assert.Greater(t, trusted.Confidence, mixed.Confidence)
	assert.InDelta(t, 0.85, trusted.Confidence, 1e-9)
}

func TestScoreCollisionDanglingNodes(t *testing.T) {
	g := collisionGraph()
	g.Nodes = nil // every edge endpoint dangles

	scored := ScoreCollision(collisionPath(collisionGraph()), g, DefaultScoreOptions())

	assert.InDelta(t, 0.85, scored.Confidence, 1e-9, "unknown nodes carry no penalty")
	// Only relationship tags remain in the rendered path.
	assert.Equal(t, []string{graph.RelDrains, graph.RelConflictsWith, graph.RelRequires}, scored.Path)
}

func TestScoreCollisionWithDomainsCrossBoost(t *testing.T) {
	g := collisionGraph()
	opts := DefaultScoreOptions()

	base := ScoreCollision(collisionPath(g), g, opts)
	domained := ScoreCollisionWithDomains(collisionPath(g), g, opts)

	// "Team dinner" is SOCIAL, "Deep focus" is UNKNOWN: domains differ.
	assert.InDelta(t, base.Confidence*1.1, domained.Confidence, 1e-9)
	assert.Equal(t, "[SOCIAL] Team dinner", domained.Path[0])
	assert.Equal(t, "[UNKNOWN] Deep focus", domained.Path[len(domained.Path)-1])
}

func TestScoreCollisionWithDomainsSameDomainNoBoost(t *testing.T) {
	g := collisionGraph()
	// Rename the end node so both endpoints classify SOCIAL.
	for i := range g.Nodes {
		if g.Nodes[i].ID == "energy-deep-focus" {
			g.Nodes[i].Label = "Energy for the party"
		}
	}
	opts := DefaultScoreOptions()

	base := ScoreCollision(collisionPath(g), g, opts)
	domained := ScoreCollisionWithDomains(collisionPath(g), g, opts)

	assert.InDelta(t, base.Confidence, domained.Confidence, 1e-9)
	assert.Equal(t, "[SOCIAL] Team dinner", domained.Path[0])
	assert.Equal(t, "[SOCIAL] Energy for the party", domained.Path[len(domained.Path)-1])
}

func TestScoreCollisionWithDomainsBoostCapped(t *testing.T) {
	g := collisionGraph()
	for i := range g.Edges {
		g.Edges[i].Confidence = 1.0
	}
	for i := range g.Nodes {
		g.Nodes[i].Source = graph.SourceUserStated
	}

	domained := ScoreCollisionWithDomains(collisionPath(g), g, DefaultScoreOptions())
	assert.Equal(t, 1.0, domained.Confidence)
}

func TestConfidenceBoundsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("scores stay in [0,1]", prop.ForAll(
		func(c1, c2, c3 float64, ai1, ai2 bool) bool {
			g := collisionGraph()
			g.Edges[0].Confidence = c1
			g.Edges[1].Confidence = c2
			g.Edges[2].Confidence = c3
			if ai1 {
				g.Nodes[0].Source = graph.SourceUserStated
			}
			if ai2 {
				g.Nodes[1].Source = graph.SourceUserStated
			}

			scored := ScoreCollisionWithDomains(collisionPath(g), g, DefaultScoreOptions())
			return scored.Confidence >= 0 && scored.Confidence <= 1
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
