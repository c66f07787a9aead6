package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
)

func testChunks(n int) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:       fmt.Sprintf("chunk-%d", i),
			Content:  fmt.Sprintf("passage %d", i),
			Position: i,
		}
	}
	return chunks
}

func testEmbeddings(n, dim int) [][]float32 {
	embeddings := make([][]float32, n)
	for i := range embeddings {
		v := make([]float32, dim)
		v[i%dim] = 1
		embeddings[i] = v
	}
	return embeddings
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	doc, err := r.Register(ctx, "report.pdf", testChunks(3), testEmbeddings(3, 4))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "report.pdf", doc.Filename)
	assert.Equal(t, 3, doc.ChunkCount)

	got, err := r.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)

	ix, err := r.Index(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Size())
}

func TestRegistry_Register_StampsDocumentID(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	doc, err := r.Register(ctx, "a.pdf", testChunks(2), testEmbeddings(2, 4))
	require.NoError(t, err)

	ix, err := r.Index(ctx, doc.ID)
	require.NoError(t, err)

	results := ix.Search([]float32{1, 0, 0, 0}, 2)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, doc.ID, res.Chunk.DocumentID)
	}
}

func TestRegistry_Register_CountMismatch(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	_, err := r.Register(ctx, "bad.pdf", testChunks(3), testEmbeddings(2, 4))
	assert.ErrorIs(t, err, domain.ErrIndexingFailed)

	// Atomicity: nothing was published.
	docs, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRegistry_Register_DimensionMismatch(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	embeddings := [][]float32{{1, 0, 0}, {0, 1}}
	_, err := r.Register(ctx, "mixed.pdf", testChunks(2), embeddings)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)

	docs, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRegistry_Get_NotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.Index(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_List_InsertionOrder(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	first, err := r.Register(ctx, "first.pdf", testChunks(1), testEmbeddings(1, 4))
	require.NoError(t, err)
	second, err := r.Register(ctx, "second.pdf", testChunks(1), testEmbeddings(1, 4))
	require.NoError(t, err)
	third, err := r.Register(ctx, "third.pdf", testChunks(1), testEmbeddings(1, 4))
	require.NoError(t, err)

	docs, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, first.ID, docs[0].ID)
	assert.Equal(t, second.ID, docs[1].ID)
	assert.Equal(t, third.ID, docs[2].ID)
}

func TestRegistry_ReuploadCreatesNewDocument(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	a, err := r.Register(ctx, "same.pdf", testChunks(1), testEmbeddings(1, 4))
	require.NoError(t, err)
	b, err := r.Register(ctx, "same.pdf", testChunks(1), testEmbeddings(1, 4))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	docs, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	doc, err := r.Register(ctx, "gone.pdf", testChunks(1), testEmbeddings(1, 4))
	require.NoError(t, err)

	require.NoError(t, r.Remove(ctx, doc.ID))

	_, err = r.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.Index(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, r.Remove(ctx, doc.ID), domain.ErrNotFound)

	docs, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
