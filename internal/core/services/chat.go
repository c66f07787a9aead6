package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driven"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driving"
	"github.com/inkwell-ai/inkwell/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// answerSystemPrompt constrains the model to the retrieved context.
// Grounding is the product's core guarantee: the orchestrator never
// generates without passages.
const answerSystemPrompt = `You are Inkwell, an assistant that answers questions about an uploaded document.
Use only the information from the context passages below to answer.
If the answer cannot be found in the context, say so plainly.
Cite passage numbers when possible.

Document context:
%s`

// ChatService orchestrates grounded, streamed answers. The lifecycle
// of one request is retrieving, then generating, then completed or
// failed; generation never starts without a retrieval result.
type ChatService struct {
	retriever driving.RetrieverService
	llm       driven.LLMService
	topK      int
	opts      driven.ChatOptions
}

// NewChatService creates a new chat service. topK <= 0 falls back to
// domain.DefaultTopK.
func NewChatService(retriever driving.RetrieverService, llm driven.LLMService, topK int, opts driven.ChatOptions) *ChatService {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &ChatService{
		retriever: retriever,
		llm:       llm,
		topK:      topK,
		opts:      opts,
	}
}

// Answer retrieves grounding passages and streams the generated answer.
// An unknown document fails with domain.ErrDocumentNotIndexed before
// any token is produced. Cancelling ctx stops token delivery and
// releases the provider connection; tokens already delivered stand.
func (s *ChatService) Answer(ctx context.Context, question, documentID string, history []domain.ChatTurn) (*domain.AnswerStream, error) {
	logger.Section("Answer")
	logger.Debug("State: %s, document=%s", domain.AnswerStateRetrieving, documentID)

	passages, err := s.retriever.Retrieve(ctx, question, documentID, s.topK)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotIndexed, documentID)
		}
		return nil, err
	}

	messages := buildMessages(passages, history, question)

	logger.Debug("State: %s, passages=%d", domain.AnswerStateGenerating, len(passages))
	stream, err := s.llm.ChatStream(ctx, messages, s.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}

	answer := domain.NewAnswerStream()
	go s.pump(ctx, stream, answer)
	return answer, nil
}

// pump forwards tokens from the provider stream to the answer stream
// until completion, failure, or cancellation. The full text is
// accumulated for verbose logging without blocking delivery.
func (s *ChatService) pump(ctx context.Context, stream driven.TokenStream, answer *domain.AnswerStream) {
	defer stream.Close()

	var full strings.Builder
	for {
		token, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Debug("State: %s, answer=%d chars", domain.AnswerStateCompleted, full.Len())
				answer.Finish(nil)
				return
			}
			if ctx.Err() != nil {
				// Caller cancelled; delivered tokens are not an error.
				logger.Debug("Answer cancelled after %d chars", full.Len())
				answer.Finish(nil)
				return
			}
			logger.Warn("State: %s: %v", domain.AnswerStateFailed, err)
			answer.Finish(fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err))
			return
		}
		if token == "" {
			continue
		}
		if !answer.Send(ctx, token) {
			answer.Finish(nil)
			return
		}
		full.WriteString(token)
	}
}

// buildMessages assembles the grounded prompt: the system instruction
// with the labelled context block, prior turns, then the question.
func buildMessages(passages []domain.ScoredChunk, history []domain.ChatTurn, question string) []domain.ChatTurn {
	messages := make([]domain.ChatTurn, 0, len(history)+2)
	messages = append(messages, domain.ChatTurn{
		Role:    domain.RoleSystem,
		Content: fmt.Sprintf(answerSystemPrompt, buildContext(passages)),
	})
	messages = append(messages, history...)
	messages = append(messages, domain.ChatTurn{
		Role:    domain.RoleUser,
		Content: question,
	})
	return messages
}

// buildContext labels each passage with its rank for traceability.
func buildContext(passages []domain.ScoredChunk) string {
	var b strings.Builder
	for i, p := range passages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[Passage %d]\n%s", i+1, p.Chunk.Content)
	}
	return b.String()
}
