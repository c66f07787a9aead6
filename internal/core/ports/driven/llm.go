package driven

import (
	"context"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
)

// LLMService provides streaming text generation for grounded answers.
//
// Implementations may include:
//   - OpenAI (GPT-4o family)
//   - Anthropic (Claude)
//   - Ollama (local models)
type LLMService interface {
	// ChatStream starts a streaming completion for the conversation.
	// Tokens are consumed from the returned stream as they arrive.
	// Cancelling ctx aborts generation and releases the connection.
	ChatStream(ctx context.Context, messages []domain.ChatTurn, opts ChatOptions) (TokenStream, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatOptions configures generation behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	// Zero uses the provider default.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// TokenStream is an incremental sequence of generated tokens.
// It is finite and not restartable.
type TokenStream interface {
	// Recv returns the next token. It returns io.EOF on normal
	// completion and any other error on interruption.
	Recv() (string, error)

	// Close releases the underlying connection. Safe to call after an
	// error and concurrently with a blocked Recv.
	Close() error
}
