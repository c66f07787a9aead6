// Package chunker splits extracted document text into overlapping
// fixed-size segments for indexing.
package chunker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
)

// Splitter produces successive windows of text, advancing the start
// offset by size-overlap each step. The trailing remainder is kept,
// never padded. Splitting is deterministic: identical input and config
// always produce an identical chunk sequence.
type Splitter struct {
	size    int
	overlap int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithSize sets the chunk window in characters.
func WithSize(size int) Option {
	return func(s *Splitter) {
		s.size = size
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		s.overlap = overlap
	}
}

// New creates a splitter with the given options.
// Fails with domain.ErrInvalidConfig when size <= 0, overlap < 0, or
// overlap >= size.
func New(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		size:    domain.DefaultChunkSize,
		overlap: domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, s.size)
	}
	if s.overlap < 0 || s.overlap >= s.size {
		return nil, fmt.Errorf("%w: overlap %d out of range [0, %d)", domain.ErrInvalidConfig, s.overlap, s.size)
	}

	return s, nil
}

// Size returns the configured chunk window.
func (s *Splitter) Size() int {
	return s.size
}

// Overlap returns the configured chunk overlap.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split segments text into ordered chunks. Empty input yields an empty
// sequence. Every chunk is at most size characters; consecutive chunks
// share exactly overlap characters, so concatenating the chunks with
// the overlapping prefix removed reconstructs the input.
func (s *Splitter) Split(text string) []domain.Chunk {
	if text == "" {
		return nil
	}

	step := s.size - s.overlap
	estimated := len(text)/step + 1
	chunks := make([]domain.Chunk, 0, estimated)

	for start := 0; start < len(text); start += step {
		end := start + s.size
		if end > len(text) {
			end = len(text)
		}

		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			Content:  text[start:end],
			Position: len(chunks),
		})

		if end == len(text) {
			break
		}
	}

	return chunks
}
