package driving

import (
	"context"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
)

// LibraryService manages the document library: upload-and-index plus
// lookup, listing and removal.
type LibraryService interface {
	// Upload extracts, chunks, embeds and registers a PDF.
	// On any failure no document is published.
	Upload(ctx context.Context, filename string, data []byte) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// List returns all documents in upload order.
	List(ctx context.Context) ([]domain.Document, error)

	// Remove drops a document and its index.
	Remove(ctx context.Context, documentID string) error
}
