package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/logging"
)

func sampleGraph() *graph.Graph {
	return &graph.Graph{
		Nodes: []graph.Node{
			{ID: "activity-team-dinner", Label: "Team dinner", Type: graph.TypeActivity, Source: graph.SourceUserStated},
			{ID: "energy-social-energy", Label: "Social energy", Type: graph.TypeEnergyState, Source: graph.SourceAIInferred},
		},
		Edges: []graph.Edge{
			{SourceID: "activity-team-dinner", TargetID: "energy-social-energy", Relationship: graph.RelDrains, Confidence: 0.9},
		},
	}
}

func TestGraphStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	s := NewGraphStoreAt(path)

	require.NoError(t, s.Save(sampleGraph()))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleGraph().Nodes, loaded.Nodes)
	assert.Equal(t, sampleGraph().Edges, loaded.Edges)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestGraphStoreCompressedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	s := NewGraphStoreAt(path, WithCompression())

	require.NoError(t, s.Save(sampleGraph()))

	// The raw file must not be plain JSON.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, byte('{'), raw[0])

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleGraph().Nodes, loaded.Nodes)

	// A plain store reads the compressed snapshot too.
	plain := NewGraphStoreAt(path)
	loaded, err = plain.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleGraph().Nodes, loaded.Nodes)
}

func TestGraphStoreLoadMissing(t *testing.T) {
	s := NewGraphStoreAt(filepath.Join(t.TempDir(), "graph.json"))
	g, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}

func TestGraphStorePreservesCreatedAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	s := NewGraphStoreAt(path)

	require.NoError(t, s.Save(sampleGraph()))
	first, err := s.readDocument()
	require.NoError(t, err)

	require.NoError(t, s.Save(sampleGraph()))
	second, err := s.readDocument()
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func TestAckStoreAddReplacesByKey(t *testing.T) {
	s := NewAckStoreAt(filepath.Join(t.TempDir(), "acks.json"), logging.NewNopLogger())

	require.NoError(t, s.Add(graph.Acknowledgment{CollisionKey: "team-dinner", NodeLabel: "Team dinner"}))
	require.NoError(t, s.Add(graph.Acknowledgment{CollisionKey: "team-dinner", NodeLabel: "Team dinner", Path: []string{"a", "b"}}))

	acks, err := s.All()
	require.NoError(t, err)
	require.Len(t, acks, 1)
	assert.Equal(t, []string{"a", "b"}, acks[0].Path)
	assert.False(t, acks[0].Timestamp.IsZero(), "missing timestamps are filled in")
}

func TestAckStoreRemove(t *testing.T) {
	s := NewAckStoreAt(filepath.Join(t.TempDir(), "acks.json"), logging.NewNopLogger())

	require.NoError(t, s.Add(graph.Acknowledgment{CollisionKey: "team-dinner"}))

	removed, err := s.Remove("team-dinner")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove("team-dinner")
	require.NoError(t, err)
	assert.False(t, removed)

	keys, err := s.AcknowledgedKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestAckStoreAcknowledgedKeys(t *testing.T) {
	s := NewAckStoreAt(filepath.Join(t.TempDir(), "acks.json"), logging.NewNopLogger())

	require.NoError(t, s.Add(graph.Acknowledgment{CollisionKey: "team-dinner"}))
	require.NoError(t, s.Add(graph.Acknowledgment{CollisionKey: "morning-gym"}))

	keys, err := s.AcknowledgedKeys()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"team-dinner": true, "morning-gym": true}, keys)
}

func TestAckStoreCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acks.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	s := NewAckStoreAt(path, logging.NewNopLogger())
	acks, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, acks)

	// Writing after corruption works and replaces the file.
	require.NoError(t, s.Add(graph.Acknowledgment{CollisionKey: "team-dinner"}))
	acks, err = s.All()
	require.NoError(t, err)
	assert.Len(t, acks, 1)
}

func TestCorrectionStoreAppend(t *testing.T) {
	s := NewCorrectionStoreAt(filepath.Join(t.TempDir(), "corrections.json"), logging.NewNopLogger())

	require.NoError(t, s.Append(graph.Correction{NodeID: "a", Action: graph.ActionDelete}))
	require.NoError(t, s.Append(graph.Correction{NodeID: "b", Action: graph.ActionModify, NewValue: "B"}))

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].NodeID)
	assert.Equal(t, "B", all[1].NewValue)
}

func TestDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data-test")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-data-test", "sentinel"), dir)
}
