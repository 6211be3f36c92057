package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/sentinel/pkg/graph"
)

func TestIsValidCollision(t *testing.T) {
	g := collisionGraph()
	path := collisionPath(g)

	assert.True(t, IsValidCollision(path, g))

	// A path ending where it started is noise.
	loop := path
	loop.Edges = append([]graph.Edge(nil), path.Edges...)
	loop.Edges[2].TargetID = "activity-team-dinner"
	assert.False(t, IsValidCollision(loop, g))
}

func TestIsValidCollisionStartType(t *testing.T) {
	g := collisionGraph()
	for i := range g.Nodes {
		if g.Nodes[i].ID == "activity-team-dinner" {
			g.Nodes[i].Type = graph.TypeTimeSlot
		}
	}
	assert.False(t, IsValidCollision(collisionPath(g), g),
		"collisions must start at a Person or Activity")
}

func TestIsValidCollisionRequiresSource(t *testing.T) {
	g := collisionGraph()
	for i := range g.Nodes {
		if g.Nodes[i].ID == "activity-presentation" {
			g.Nodes[i].Type = graph.TypeEnergyState
		}
	}
	assert.False(t, IsValidCollision(collisionPath(g), g),
		"REQUIRES must originate from an Activity")
}

func TestIsValidCollisionDanglingBenefitOfDoubt(t *testing.T) {
	g := collisionGraph()
	g.Nodes = nil
	assert.True(t, IsValidCollision(collisionPath(collisionGraph()), g))
}

func TestDeduplicateCollisions(t *testing.T) {
	collisions := []graph.ScoredCollision{
		{Path: []string{"A", "DRAINS", "B"}, Confidence: 0.5},
		{Path: []string{"C", "DRAINS", "D"}, Confidence: 0.9},
		{Path: []string{"A", "DRAINS", "B"}, Confidence: 0.7},
	}

	deduped := DeduplicateCollisions(collisions)
	require.Len(t, deduped, 2)
	assert.Equal(t, 0.7, deduped[0].Confidence, "duplicate keeps max confidence")
	assert.Equal(t, []string{"A", "DRAINS", "B"}, deduped[0].Path, "first-seen order preserved")
	assert.Equal(t, 0.9, deduped[1].Confidence)
}

func TestDetectCollisions(t *testing.T) {
	collisions, err := DetectCollisions(collisionGraph(), DefaultDetectOptions())
	require.NoError(t, err)
	require.Len(t, collisions, 1)

	c := collisions[0]
	assert.Equal(t, "[SOCIAL] Team dinner", c.Path[0])
	assert.InDelta(t, 0.681615, c.Confidence, 1e-6)
}

func TestDetectCollisionsSortedByConfidence(t *testing.T) {
	// Two independent collisions with different edge confidences.
	g := collisionGraph()
	offset := func(id string) string { return id + "-2" }
	base := collisionGraph()
	for _, n := range base.Nodes {
		n.ID = offset(n.ID)
		n.Label = n.Label + " two"
		g.Nodes = append(g.Nodes, n)
	}
	for _, e := range base.Edges {
		e.SourceID = offset(e.SourceID)
		e.TargetID = offset(e.TargetID)
		e.Confidence = 0.4
		g.Edges = append(g.Edges, e)
	}

	collisions, err := DetectCollisions(g, DefaultDetectOptions())
	require.NoError(t, err)
	require.Len(t, collisions, 2)
	assert.GreaterOrEqual(t, collisions[0].Confidence, collisions[1].Confidence)
}

func TestDetectCollisionsCleanGraph(t *testing.T) {
	g := collisionGraph()
	g.Edges = g.Edges[:2] // no REQUIRES edge anywhere

	collisions, err := DetectCollisions(g, DefaultDetectOptions())
	require.NoError(t, err)
	assert.Empty(t, collisions)
}

func TestFilterByConfidence(t *testing.T) {
	collisions := []graph.ScoredCollision{
		{Path: []string{"a"}, Confidence: 0.9},
		{Path: []string{"b"}, Confidence: 0.5},
		{Path: []string{"c"}, Confidence: 0.3},
	}

	filtered := FilterByConfidence(collisions, 0.5)
	require.Len(t, filtered, 2)
	assert.Equal(t, []string{"a"}, filtered[0].Path)
	assert.Equal(t, []string{"b"}, filtered[1].Path)

	assert.Empty(t, FilterByConfidence(collisions, 1.1))
	assert.Len(t, FilterByConfidence(collisions, 0), 3)
}
