package driving

import (
	"context"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
)

// RetrieverService finds the passages of a document most relevant to a
// natural-language query.
type RetrieverService interface {
	// Retrieve embeds the query and searches the document's index.
	// k <= 0 uses the configured default.
	Retrieve(ctx context.Context, query, documentID string, k int) ([]domain.ScoredChunk, error)
}

// ChatService answers questions about an indexed document with a
// streamed, grounded response.
type ChatService interface {
	// Answer retrieves grounding passages and streams the generated
	// answer. It fails with domain.ErrDocumentNotIndexed before any
	// token is produced when the document is unknown.
	Answer(ctx context.Context, question, documentID string, history []domain.ChatTurn) (*domain.AnswerStream, error)
}
