// Package memory provides the in-memory document registry.
// All indexed documents live for the process lifetime only.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driven"
	"github.com/inkwell-ai/inkwell/internal/vector"
)

// Ensure Registry implements the interface.
var _ driven.DocumentRegistry = (*Registry)(nil)

// entry pairs a published document with its immutable vector index.
type entry struct {
	doc   domain.Document
	index *vector.Index
}

// Registry is the in-memory implementation of driven.DocumentRegistry.
// Mutations of the id mapping are serialised by the mutex; a vector
// index is fully built before it is published, so readers never see a
// partially inserted index.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string
}

// NewRegistry creates an empty document registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
	}
}

// Register builds a fresh index from the chunk/embedding pairs and then
// publishes the document under a new identifier. Nothing is published
// on any failure.
func (r *Registry) Register(_ context.Context, filename string, chunks []domain.Chunk, embeddings [][]float32) (*domain.Document, error) {
	if len(chunks) != len(embeddings) {
		return nil, fmt.Errorf("%w: %d chunks but %d embeddings",
			domain.ErrIndexingFailed, len(chunks), len(embeddings))
	}

	id := uuid.New().String()

	// Build the full index before taking the lock. A re-uploaded file
	// always becomes a new independent document.
	index := vector.NewIndex()
	for i := range chunks {
		chunk := chunks[i]
		chunk.DocumentID = id
		if err := index.Insert(chunk, embeddings[i]); err != nil {
			return nil, err
		}
	}

	doc := domain.Document{
		ID:         id,
		Filename:   filename,
		ChunkCount: len(chunks),
		CreatedAt:  time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &entry{doc: doc, index: index}
	r.order = append(r.order, id)

	return &doc, nil
}

// Get retrieves a document by ID.
func (r *Registry) Get(_ context.Context, id string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := e.doc
	return &doc, nil
}

// Index retrieves the vector index for a document.
func (r *Registry) Index(_ context.Context, id string) (*vector.Index, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e.index, nil
}

// List returns all documents in insertion order.
func (r *Registry) List(_ context.Context) ([]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := make([]domain.Document, 0, len(r.order))
	for _, id := range r.order {
		if e, ok := r.entries[id]; ok {
			docs = append(docs, e.doc)
		}
	}
	return docs, nil
}

// Remove drops a document and its index.
func (r *Registry) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.entries, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
