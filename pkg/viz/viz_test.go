package viz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dd0wney/sentinel/pkg/graph"
)

func renderGraphFixture() *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{
			{ID: "person-alex", Label: "Alex", Type: graph.TypePerson, Source: graph.SourceUserStated},
			{ID: "energy-social-energy", Label: "Social energy", Type: graph.TypeEnergyState, Source: graph.SourceAIInferred},
		},
		Edges: []graph.Edge{
			{SourceID: "person-alex", TargetID: "energy-social-energy", Relationship: graph.RelDrains, Confidence: 0.9},
			{SourceID: "person-alex", TargetID: "energy-social-energy", Relationship: graph.RelDrains, Confidence: 0.7},
		},
	}
}

func TestFormatNodeProvenanceMarkers(t *testing.T) {
	assert.Equal(t, "[Alex]", FormatNode(graph.Node{Label: "Alex", Source: graph.SourceUserStated}))
	assert.Equal(t, "(Social energy)", FormatNode(graph.Node{Label: "Social energy", Source: graph.SourceAIInferred}))
}

func TestRenderGraph(t *testing.T) {
	out := RenderGraph(renderGraphFixture())

	assert.Contains(t, out, "2 nodes, 2 edges")
	assert.Contains(t, out, "[Alex]")
	assert.Contains(t, out, "(Social energy)")

	// Identical relationship lines collapse to one.
	line := "[Alex] --DRAINS--> (Social energy)"
	assert.Equal(t, 1, strings.Count(out, line))
}

func TestRenderGraphEmpty(t *testing.T) {
	out := RenderGraph(&graph.Graph{})
	assert.Contains(t, out, "0 nodes, 0 edges")
	assert.Contains(t, out, "(empty)")
}

func TestRenderGraphLargeSummary(t *testing.T) {
	g := &graph.Graph{}
	for i := 0; i < LargeGraphNodeLimit+1; i++ {
		g.Nodes = append(g.Nodes, graph.Node{
			ID:     fmt.Sprintf("activity-%d", i),
			Label:  fmt.Sprintf("Activity %d", i),
			Type:   graph.TypeActivity,
			Source: graph.SourceAIInferred,
		})
	}

	out := RenderGraph(g)
	assert.Contains(t, out, "ACTIVITY: 51")
	assert.NotContains(t, out, "(Activity 0)", "large graphs are summarized, not listed")
}

func TestRenderCollisions(t *testing.T) {
	out := RenderCollisions([]graph.ScoredCollision{
		{
			Path:       []string{"[SOCIAL] Team dinner", "DRAINS", "Social energy"},
			Confidence: 0.68,
			SourceBreakdown: map[string]int{
				"user_stated": 1,
				"ai_inferred": 3,
			},
		},
	})

	assert.Contains(t, out, "1 energy collision(s) detected")
	assert.Contains(t, out, "[SOCIAL] Team dinner -> DRAINS -> Social energy")
	assert.Contains(t, out, "(68%)")
	assert.Contains(t, out, "1 user-stated, 3 ai-inferred")
}

func TestRenderCollisionsEmpty(t *testing.T) {
	out := RenderCollisions(nil)
	assert.Contains(t, out, "No energy collisions detected.")
}
