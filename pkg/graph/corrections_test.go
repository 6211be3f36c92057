package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph() *Graph {
	return &Graph{
		Nodes: []Node{
			{ID: "person-alex", Label: "Alex", Type: TypePerson, Source: SourceUserStated},
			{ID: "activity-team-dinner", Label: "Team dinner", Type: TypeActivity, Source: SourceAIInferred},
			{ID: "energy-social-energy", Label: "Social energy", Type: TypeEnergyState, Source: SourceAIInferred},
		},
		Edges: []Edge{
			{SourceID: "person-alex", TargetID: "activity-team-dinner", Relationship: RelInvolves, Confidence: 0.9},
			{SourceID: "activity-team-dinner", TargetID: "energy-social-energy", Relationship: RelDrains, Confidence: 0.8},
		},
	}
}

func TestApplyCorrectionDelete(t *testing.T) {
	g := testGraph()

	corrected, err := ApplyCorrection(g, Correction{
		NodeID: "activity-team-dinner",
		Action: ActionDelete,
	})
	require.NoError(t, err)

	assert.Nil(t, corrected.NodeByID("activity-team-dinner"))
	assert.Empty(t, corrected.Edges, "edges touching the node must go with it")

	// Input untouched.
	assert.NotNil(t, g.NodeByID("activity-team-dinner"))
	assert.Len(t, g.Edges, 2)
}

func TestApplyCorrectionDeleteUserStated(t *testing.T) {
	_, err := ApplyCorrection(testGraph(), Correction{
		NodeID: "person-alex",
		Action: ActionDelete,
	})
	require.ErrorIs(t, err, ErrUserStatedNode)
	assert.True(t, IsPolicyViolation(err))
	assert.False(t, IsNotFound(err))
}

func TestApplyCorrectionDeleteMissing(t *testing.T) {
	_, err := ApplyCorrection(testGraph(), Correction{
		NodeID: "nope",
		Action: ActionDelete,
	})
	require.ErrorIs(t, err, ErrNodeNotFound)
	assert.True(t, IsNotFound(err))
}

func TestApplyCorrectionModify(t *testing.T) {
	g := testGraph()

	corrected, err := ApplyCorrection(g, Correction{
		NodeID:   "activity-team-dinner",
		Action:   ActionModify,
		NewValue: "Quarterly team dinner",
	})
	require.NoError(t, err)

	node := corrected.NodeByID("activity-team-dinner")
	require.NotNil(t, node, "modify keeps the node ID")
	assert.Equal(t, "Quarterly team dinner", node.Label)
	assert.Equal(t, TypeActivity, node.Type)

	assert.Equal(t, "Team dinner", g.NodeByID("activity-team-dinner").Label)
}

func TestApplyCorrectionModifyRelationship(t *testing.T) {
	corrected, err := ApplyCorrection(testGraph(), Correction{
		NodeID:           "activity-team-dinner",
		Action:           ActionModifyRelationship,
		TargetNodeID:     "energy-social-energy",
		NewValue:         RelRequires,
		EdgeRelationship: RelDrains,
	})
	require.NoError(t, err)
	assert.Equal(t, RelRequires, corrected.Edges[1].Relationship)
}

func TestApplyCorrectionRemoveEdgeReversed(t *testing.T) {
	// The user names the endpoints in the opposite of the stored direction.
	corrected, err := ApplyCorrection(testGraph(), Correction{
		NodeID:           "energy-social-energy",
		Action:           ActionRemoveEdge,
		TargetNodeID:     "activity-team-dinner",
		EdgeRelationship: RelDrains,
	})
	require.NoError(t, err)
	require.Len(t, corrected.Edges, 1)
	assert.Equal(t, RelInvolves, corrected.Edges[0].Relationship)
}

func TestApplyCorrectionEdgeNotFound(t *testing.T) {
	_, err := ApplyCorrection(testGraph(), Correction{
		NodeID:           "person-alex",
		Action:           ActionRemoveEdge,
		TargetNodeID:     "energy-social-energy",
		EdgeRelationship: RelDrains,
	})
	require.ErrorIs(t, err, ErrEdgeNotFound)
}

func TestApplyCorrectionActionFromUserInput(t *testing.T) {
	// Actions arrive from the CLI as plain strings and are converted.
	raw := "delete"

	corrected, err := ApplyCorrection(testGraph(), Correction{
		NodeID: "activity-team-dinner",
		Action: Action(raw),
	})
	require.NoError(t, err)
	assert.Nil(t, corrected.NodeByID("activity-team-dinner"))
}

func TestApplyCorrectionUnknownAction(t *testing.T) {
	_, err := ApplyCorrection(testGraph(), Correction{
		NodeID: "person-alex",
		Action: "explode",
	})
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestStripDomainPrefix(t *testing.T) {
	assert.Equal(t, "Aunt Susan", StripDomainPrefix("[SOCIAL] Aunt Susan"))
	assert.Equal(t, "Aunt Susan", StripDomainPrefix("[SOCIAL]Aunt Susan"))
	assert.Equal(t, "Aunt Susan", StripDomainPrefix("Aunt Susan"))
	assert.Equal(t, "", StripDomainPrefix("[HEALTH]"))
	assert.Equal(t, "[broken", StripDomainPrefix("[broken"))
}
