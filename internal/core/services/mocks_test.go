package services

import (
	"context"
	"io"
	"sync"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driven"
)

// mockEmbedder is a mock implementation of driven.EmbeddingService.
// It hashes texts to deterministic unit-ish vectors unless fixed
// vectors or an error are configured.
type mockEmbedder struct {
	vectors    [][]float32
	err        error
	dimensions int

	mu         sync.Mutex
	embedCalls int
	batchCalls int
}

func newMockEmbedder(dim int) *mockEmbedder {
	return &mockEmbedder{dimensions: dim}
}

func (m *mockEmbedder) vectorFor(text string, dim int) []float32 {
	v := make([]float32, dim)
	for i, r := range text {
		v[i%dim] += float32(r % 13)
	}
	if len(text) == 0 {
		v[0] = 1
	}
	return v
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.embedCalls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if len(m.vectors) > 0 {
		return m.vectors[0], nil
	}
	return m.vectorFor(text, m.dimensions), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.batchCalls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if len(m.vectors) > 0 {
		return m.vectors, nil
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vectorFor(text, m.dimensions)
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return m.dimensions }
func (m *mockEmbedder) ModelName() string            { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

func (m *mockEmbedder) calls() (embed, batch int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.embedCalls, m.batchCalls
}

// mockExtractor is a mock implementation of driven.TextExtractor.
type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	return m.text, m.err
}

// mockTokenStream replays a fixed token sequence, then a terminal
// error (io.EOF for normal completion).
type mockTokenStream struct {
	tokens []string
	final  error

	mu     sync.Mutex
	pos    int
	closed bool
}

func (m *mockTokenStream) Recv() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pos < len(m.tokens) {
		token := m.tokens[m.pos]
		m.pos++
		return token, nil
	}
	if m.final != nil {
		return "", m.final
	}
	return "", io.EOF
}

func (m *mockTokenStream) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockTokenStream) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// mockLLM is a mock implementation of driven.LLMService.
type mockLLM struct {
	stream   *mockTokenStream
	err      error
	messages []domain.ChatTurn
}

func (m *mockLLM) ChatStream(_ context.Context, messages []domain.ChatTurn, _ driven.ChatOptions) (driven.TokenStream, error) {
	m.messages = messages
	if m.err != nil {
		return nil, m.err
	}
	return m.stream, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }
