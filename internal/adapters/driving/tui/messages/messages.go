// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/inkwell-ai/inkwell/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPicker is the document selection view.
	ViewPicker ViewType = iota
	// ViewChat is the question-and-answer view.
	ViewChat
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPicker:
		return "picker"
	case ViewChat:
		return "chat"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// DocumentsLoaded carries the document library listing.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// DocumentPicked signals a document was chosen for chat.
type DocumentPicked struct {
	Document domain.Document
}

// AnswerStarted carries a freshly opened answer stream.
type AnswerStarted struct {
	Stream *domain.AnswerStream
	Err    error
}

// TokenReceived carries one streamed answer token.
type TokenReceived struct {
	Token string
}

// AnswerFinished signals the answer stream closed.
type AnswerFinished struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
