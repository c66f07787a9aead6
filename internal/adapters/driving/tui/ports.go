package tui

import (
	"github.com/inkwell-ai/inkwell/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library manages the document library.
	Library driving.LibraryService

	// Chat answers questions about a document.
	Chat driving.ChatService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
