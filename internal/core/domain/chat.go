package domain

import (
	"context"
	"sync"
)

// Chat roles understood by the generation providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is a single prior turn of a conversation.
type ChatTurn struct {
	// Role is RoleUser or RoleAssistant.
	Role string

	// Content is the turn text.
	Content string
}

// AnswerState tracks the lifecycle of an answer request.
type AnswerState string

// Answer lifecycle states. Generation never starts before retrieval
// has produced a grounding context.
const (
	AnswerStateIdle       AnswerState = "idle"
	AnswerStateRetrieving AnswerState = "retrieving"
	AnswerStateGenerating AnswerState = "generating"
	AnswerStateCompleted  AnswerState = "completed"
	AnswerStateFailed     AnswerState = "failed"
)

// AnswerStream delivers generated answer tokens as they arrive.
// It is finite and not restartable. The producer calls Send and then
// Finish exactly once; the consumer ranges over Tokens and checks Err
// once the channel is closed.
type AnswerStream struct {
	tokens chan string

	mu  sync.Mutex
	err error
}

// NewAnswerStream creates an answer stream with a small delivery buffer.
func NewAnswerStream() *AnswerStream {
	return &AnswerStream{
		tokens: make(chan string, 16),
	}
}

// Tokens returns the channel of answer tokens. It is closed when the
// answer completes, fails, or is cancelled.
func (s *AnswerStream) Tokens() <-chan string {
	return s.tokens
}

// Send delivers a token to the consumer. It returns false when the
// context is cancelled before the token is accepted.
func (s *AnswerStream) Send(ctx context.Context, token string) bool {
	select {
	case s.tokens <- token:
		return true
	case <-ctx.Done():
		return false
	}
}

// Finish records the terminal error, if any, and closes the token
// channel. Must be called exactly once by the producer.
func (s *AnswerStream) Finish(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.tokens)
}

// Err reports the terminal error. Only valid after Tokens is closed.
// A nil error means the stream completed or was cancelled cleanly;
// tokens already delivered are never retracted.
func (s *AnswerStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
