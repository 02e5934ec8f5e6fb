package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceChunks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.ReplaceChunks(ctx, "resume.md", []ChunkInput{
		{Content: "Go and distributed systems experience", Embedding: []float32{0.1, 0.2}},
		{Content: "Led a team of four engineers"},
	})
	require.NoError(t, err)

	chunks, err := store.ListChunks(ctx)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 0, chunks[0].ChunkIndex)
	assert.Equal(t, 1, chunks[1].ChunkIndex)
	assert.Equal(t, []float32{0.1, 0.2}, chunks[0].Embedding)
	assert.Nil(t, chunks[1].Embedding)

	// Replacing swaps out the old chunks entirely
	err = store.ReplaceChunks(ctx, "resume.md", []ChunkInput{
		{Content: "updated content"},
	})
	require.NoError(t, err)

	chunks, err = store.ListChunks(ctx)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "updated content", chunks[0].Content)
}

func TestReplaceChunks_RequiresSource(t *testing.T) {
	store := newTestStore(t)

	err := store.ReplaceChunks(context.Background(), "", nil)
	assert.ErrorContains(t, err, "source is required")
}

func TestReplaceChunks_MultipleSources(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceChunks(ctx, "resume.md", []ChunkInput{{Content: "a"}}))
	require.NoError(t, store.ReplaceChunks(ctx, "skills.csv", []ChunkInput{{Content: "b"}, {Content: "c"}}))

	// Replacing one source leaves the other alone
	require.NoError(t, store.ReplaceChunks(ctx, "resume.md", []ChunkInput{{Content: "d"}}))

	count, err := store.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	sources, err := store.ChunkSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, SourceCount{Source: "resume.md", Count: 1}, sources[0])
	assert.Equal(t, SourceCount{Source: "skills.csv", Count: 2}, sources[1])
}

func TestSearchChunksLike(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceChunks(ctx, "resume.md", []ChunkInput{
		{Content: "Built Kubernetes operators in Go"},
		{Content: "Managed PostgreSQL clusters"},
		{Content: "Organized the office picnic"},
	}))

	hits, err := store.SearchChunksLike(ctx, []string{"kubernetes", "postgresql"}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	none, err := store.SearchChunksLike(ctx, []string{"blockchain"}, 10)
	require.NoError(t, err)
	assert.Empty(t, none)

	empty, err := store.SearchChunksLike(ctx, nil, 10)
	require.NoError(t, err)
	assert.Nil(t, empty)
}
