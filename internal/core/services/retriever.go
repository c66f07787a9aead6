package services

import (
	"context"
	"fmt"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driven"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driving"
	"github.com/inkwell-ai/inkwell/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.RetrieverService = (*RetrieverService)(nil)

// RetrieverService embeds a query and searches one document's index.
// It never retries embedding calls; retry policy belongs to the
// adapter layer.
type RetrieverService struct {
	registry driven.DocumentRegistry
	embedder driven.EmbeddingService
	topK     int
}

// NewRetrieverService creates a new retriever. defaultTopK <= 0 falls
// back to domain.DefaultTopK.
func NewRetrieverService(registry driven.DocumentRegistry, embedder driven.EmbeddingService, defaultTopK int) *RetrieverService {
	if defaultTopK <= 0 {
		defaultTopK = domain.DefaultTopK
	}
	return &RetrieverService{
		registry: registry,
		embedder: embedder,
		topK:     defaultTopK,
	}
}

// Retrieve returns the top-k passages of the document for the query,
// descending by cosine similarity. The index lookup happens before the
// query is embedded, so an unknown document never costs an embedding
// call.
func (s *RetrieverService) Retrieve(ctx context.Context, query, documentID string, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		k = s.topK
	}

	index, err := s.registry.Index(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("lookup document %s: %w", documentID, err)
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results := index.Search(embedding, k)
	logger.Debug("Retrieved %d passages for %q from %s", len(results), query, documentID)
	return results, nil
}
