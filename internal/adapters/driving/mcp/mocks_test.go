package mcp

import (
	"context"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
)

// mockLibraryService is a test double for driving.LibraryService.
type mockLibraryService struct {
	docs []domain.Document
	err  error
}

func (m *mockLibraryService) Upload(_ context.Context, filename string, _ []byte) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Document{ID: "new-doc", Filename: filename}, nil
}

func (m *mockLibraryService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.docs {
		if m.docs[i].ID == id {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockLibraryService) List(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockLibraryService) Remove(_ context.Context, _ string) error {
	return m.err
}

// mockRetrieverService is a test double for driving.RetrieverService.
type mockRetrieverService struct {
	results []domain.ScoredChunk
	err     error

	lastQuery string
	lastDocID string
	lastK     int
}

func (m *mockRetrieverService) Retrieve(_ context.Context, query, documentID string, k int) ([]domain.ScoredChunk, error) {
	m.lastQuery = query
	m.lastDocID = documentID
	m.lastK = k
	return m.results, m.err
}

// mockChatService is a test double for driving.ChatService.
type mockChatService struct {
	tokens    []string
	streamErr error
	err       error
}

func (m *mockChatService) Answer(ctx context.Context, _, _ string, _ []domain.ChatTurn) (*domain.AnswerStream, error) {
	if m.err != nil {
		return nil, m.err
	}
	stream := domain.NewAnswerStream()
	go func() {
		for _, token := range m.tokens {
			if !stream.Send(ctx, token) {
				stream.Finish(nil)
				return
			}
		}
		stream.Finish(m.streamErr)
	}()
	return stream, nil
}
