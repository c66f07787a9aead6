package driven

import (
	"context"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
	"github.com/inkwell-ai/inkwell/internal/vector"
)

// DocumentRegistry owns all documents and their vector indexes for the
// process lifetime. Registration is atomic: an index is fully built
// before the document becomes visible, so no reader ever observes a
// partially inserted index.
type DocumentRegistry interface {
	// Register builds a fresh index from the chunk/embedding pairs and
	// publishes the document under a newly generated identifier.
	// A count mismatch fails with domain.ErrIndexingFailed and nothing
	// is published.
	Register(ctx context.Context, filename string, chunks []domain.Chunk, embeddings [][]float32) (*domain.Document, error)

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Index retrieves the vector index for a document.
	// Returns domain.ErrNotFound for unknown ids.
	Index(ctx context.Context, id string) (*vector.Index, error)

	// List returns all documents in insertion order.
	List(ctx context.Context) ([]domain.Document, error)

	// Remove drops a document and its index. Subsequent Get and Index
	// calls for the id return domain.ErrNotFound.
	Remove(ctx context.Context, id string) error
}
