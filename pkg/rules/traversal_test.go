package rules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/sentinel/pkg/graph"
)

func TestFindCollisionPathsAsyncMatchesSync(t *testing.T) {
	g := collisionGraph()

	syncPaths, err := FindCollisionPaths(g, DefaultFindOptions())
	require.NoError(t, err)

	result, err := FindCollisionPathsAsync(context.Background(), g, DefaultTraversalOptions())
	require.NoError(t, err)

	assert.False(t, result.TimedOut)
	assert.Equal(t, syncPaths, result.Paths)
	assert.Greater(t, result.RelationshipsAnalyzed, 0)
}

func TestFindCollisionPathsAsyncZeroHopTimeout(t *testing.T) {
	opts := DefaultTraversalOptions()
	opts.HopTimeout = 0

	result, err := FindCollisionPathsAsync(context.Background(), collisionGraph(), opts)

	// A timeout is a result, never an error.
	require.NoError(t, err)
	assert.True(t, result.TimedOut, "a zero budget cannot survive the first hop")
}

func TestFindCollisionPathsAsyncKeepsFinishedHop(t *testing.T) {
	// One DRAINS edge two hops from the rest of the pattern, with MaxDepth 1
	// so the very first hop both matches and times out.
	g := &graph.Graph{
		Edges: []graph.Edge{
			{SourceID: "a", TargetID: "b", Relationship: graph.RelDrains, Confidence: 0.9},
		},
	}
	opts := TraversalOptions{MaxDepth: 1, HopTimeout: 0}

	result, err := FindCollisionPathsAsync(context.Background(), g, opts)
	require.NoError(t, err)
	assert.True(t, result.TimedOut)
	// MaxDepth 1 paths never carry the full pattern, so no matches here,
	// but the hop itself completed and was counted.
	assert.Equal(t, 1, result.RelationshipsAnalyzed)
}

func TestFindCollisionPathsAsyncCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := FindCollisionPathsAsync(ctx, collisionGraph(), DefaultTraversalOptions())
	require.NoError(t, err)
	assert.True(t, result.TimedOut)
}

func TestFindCollisionPathsAsyncProgress(t *testing.T) {
	var counts []int
	opts := DefaultTraversalOptions()
	opts.Progress = func(analyzed int) {
		counts = append(counts, analyzed)
	}

	_, err := FindCollisionPathsAsync(context.Background(), collisionGraph(), opts)
	require.NoError(t, err)

	require.NotEmpty(t, counts)
	for i := 1; i < len(counts); i++ {
		assert.Greater(t, counts[i], counts[i-1], "progress counts are strictly increasing")
	}
}

func TestFindCollisionPathsAsyncInvalidDepth(t *testing.T) {
	_, err := FindCollisionPathsAsync(context.Background(), collisionGraph(), TraversalOptions{
		MaxDepth:   0,
		HopTimeout: time.Second,
	})
	require.ErrorIs(t, err, graph.ErrInvalidDepth)
}
