package mcp

import (
	"github.com/inkwell-ai/inkwell/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library manages the document library.
	Library driving.LibraryService

	// Retriever finds relevant passages in a document.
	Retriever driving.RetrieverService

	// Chat answers questions about a document. Optional; the
	// ask_document tool is only registered when it is set.
	Chat driving.ChatService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Retriever == nil {
		return ErrMissingRetrieverService
	}
	return nil
}
