package domain

import "time"

// Document represents an indexed PDF with its summary metadata.
// It is created on successful indexing and immutable thereafter.
type Document struct {
	// ID is the unique, URL-safe identifier for the document.
	ID string

	// Filename is the original upload filename.
	Filename string

	// ChunkCount is the number of chunks the document was split into.
	ChunkCount int

	// CreatedAt is when the document was indexed.
	CreatedAt time.Time
}

// Chunk is a bounded contiguous segment of a document's text.
// It is the unit of retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	// It is stamped at registration time.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int
}

// ScoredChunk pairs a retrieved chunk with its similarity score.
type ScoredChunk struct {
	// Chunk is the retrieved passage.
	Chunk Chunk

	// Score is the cosine similarity to the query, in [-1, 1].
	Score float64
}
