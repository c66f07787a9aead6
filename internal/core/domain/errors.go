package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors and are matched with
// errors.Is after wrapping.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates bad chunking or retrieval parameters.
	// This is fatal at construction time, not recoverable.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnreadablePDF indicates text extraction failed.
	// The document is not registered.
	ErrUnreadablePDF = errors.New("unreadable PDF")

	// ErrEmbeddingUnavailable indicates the embedding service call failed.
	// Indexing aborts with nothing published; retrieval aborts the query.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generation service is not configured
	// or unreachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrDimensionMismatch indicates an embedding with the wrong dimension
	// was inserted into an index. This points at mixed embedding models.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexingFailed indicates a chunk/embedding count mismatch during
	// registration. Nothing is published.
	ErrIndexingFailed = errors.New("indexing failed")

	// ErrGenerationFailed indicates the answer stream was interrupted.
	// Tokens already delivered are not retracted.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrDocumentNotIndexed indicates chat was requested against a document
	// with no index. The orchestrator never answers ungrounded.
	ErrDocumentNotIndexed = errors.New("document not indexed")
)
