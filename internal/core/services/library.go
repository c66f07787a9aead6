package services

import (
	"context"
	"fmt"

	"github.com/inkwell-ai/inkwell/internal/chunker"
	"github.com/inkwell-ai/inkwell/internal/core/domain"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driven"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driving"
	"github.com/inkwell-ai/inkwell/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService runs the indexing pipeline and fronts the registry.
type LibraryService struct {
	extractor driven.TextExtractor
	splitter  *chunker.Splitter
	embedder  driven.EmbeddingService
	registry  driven.DocumentRegistry
}

// NewLibraryService creates a new library service.
func NewLibraryService(
	extractor driven.TextExtractor,
	splitter *chunker.Splitter,
	embedder driven.EmbeddingService,
	registry driven.DocumentRegistry,
) *LibraryService {
	return &LibraryService{
		extractor: extractor,
		splitter:  splitter,
		embedder:  embedder,
		registry:  registry,
	}
}

// Upload extracts, chunks, embeds and registers a PDF. The commit is
// all-or-nothing: any failure leaves the registry unchanged.
func (s *LibraryService) Upload(ctx context.Context, filename string, data []byte) (*domain.Document, error) {
	logger.Section("Indexing")
	logger.Debug("Upload: %s (%d bytes)", filename, len(data))

	text, err := s.extractor.Extract(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: no text content in %s", domain.ErrUnreadablePDF, filename)
	}

	chunks := s.splitter.Split(text)
	logger.Debug("Split into %d chunks (size=%d, overlap=%d)",
		len(chunks), s.splitter.Size(), s.splitter.Overlap())

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %s: %w", filename, err)
	}

	doc, err := s.registry.Register(ctx, filename, chunks, embeddings)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", filename, err)
	}

	logger.Info("Indexed %s as %s (%d chunks)", filename, doc.ID, doc.ChunkCount)
	return doc, nil
}

// Get retrieves a document by ID.
func (s *LibraryService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.registry.Get(ctx, documentID)
}

// List returns all documents in upload order.
func (s *LibraryService) List(ctx context.Context) ([]domain.Document, error) {
	return s.registry.List(ctx)
}

// Remove drops a document and its index.
func (s *LibraryService) Remove(ctx context.Context, documentID string) error {
	logger.Debug("Remove document %s", documentID)
	return s.registry.Remove(ctx, documentID)
}
