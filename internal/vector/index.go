package vector

import (
	"fmt"
	"sort"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
)

// Index stores (chunk, embedding) pairs for exactly one document and
// supports exact nearest-neighbour search by cosine similarity.
//
// An Index is built with Insert calls before it is published to the
// document registry and is read-only afterwards. That sequencing, not
// locking, is what makes concurrent searches safe.
type Index struct {
	dim       int
	chunks    []domain.Chunk
	vectors   [][]float32
}

// NewIndex creates an empty index. The embedding dimension is
// established by the first Insert.
func NewIndex() *Index {
	return &Index{}
}

// Insert appends a chunk and its embedding.
// Fails with domain.ErrDimensionMismatch when the embedding length
// differs from the index's established dimension.
func (ix *Index) Insert(chunk domain.Chunk, embedding []float32) error {
	if len(embedding) == 0 {
		return fmt.Errorf("%w: empty embedding for chunk %d", domain.ErrDimensionMismatch, chunk.Position)
	}
	if ix.dim == 0 {
		ix.dim = len(embedding)
	} else if len(embedding) != ix.dim {
		return fmt.Errorf("%w: got %d, index has %d", domain.ErrDimensionMismatch, len(embedding), ix.dim)
	}

	ix.chunks = append(ix.chunks, chunk)
	ix.vectors = append(ix.vectors, embedding)
	return nil
}

// Search returns the min(k, Size) chunks most similar to the query
// embedding, descending by score. Ties are broken by ascending chunk
// position, which keeps results deterministic.
func (ix *Index) Search(query []float32, k int) []domain.ScoredChunk {
	if k <= 0 || len(ix.chunks) == 0 {
		return []domain.ScoredChunk{}
	}

	results := make([]domain.ScoredChunk, len(ix.chunks))
	for i := range ix.chunks {
		results[i] = domain.ScoredChunk{
			Chunk: ix.chunks[i],
			Score: Cosine(query, ix.vectors[i]),
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.Position < results[j].Chunk.Position
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}

// Size returns the number of stored chunks.
func (ix *Index) Size() int {
	return len(ix.chunks)
}

// Dimensions returns the established embedding dimension, or 0 for an
// empty index.
func (ix *Index) Dimensions() int {
	return ix.dim
}
