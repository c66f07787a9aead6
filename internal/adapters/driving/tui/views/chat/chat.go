// Package chat provides the question-and-answer view for the TUI.
package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inkwell-ai/inkwell/internal/adapters/driving/tui/messages"
	"github.com/inkwell-ai/inkwell/internal/adapters/driving/tui/styles"
	"github.com/inkwell-ai/inkwell/internal/core/domain"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driving"
)

// View represents the chat view for a single document.
type View struct {
	styles *styles.Styles
	chat   driving.ChatService
	ctx    context.Context

	doc     *domain.Document
	input   textinput.Model
	spinner spinner.Model

	history []domain.ChatTurn
	partial strings.Builder

	stream    *domain.AnswerStream
	cancel    context.CancelFunc
	streaming bool
	err       error

	width  int
	height int
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, chat driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask a question..."
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &View{
		styles:  s,
		chat:    chat,
		ctx:     context.Background(),
		input:   ti,
		spinner: sp,
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDocument switches the view to a new document, clearing the
// conversation.
func (v *View) SetDocument(doc *domain.Document) {
	v.stopStreaming()
	v.doc = doc
	v.history = nil
	v.partial.Reset()
	v.err = nil
	v.input.Reset()
}

// Init initialises the chat view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if v.streaming {
				// Cancel generation; tokens received so far stand.
				v.stopStreaming()
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewPicker}
			}

		case "enter":
			if v.streaming {
				return v, nil
			}
			question := strings.TrimSpace(v.input.Value())
			if question == "" {
				return v, nil
			}
			v.input.Reset()
			v.err = nil
			return v, v.startAnswer(question)
		}

		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd

	case messages.AnswerStarted:
		if msg.Err != nil {
			v.streaming = false
			v.err = msg.Err
			// Drop the failed user turn so a retry doesn't duplicate it.
			if n := len(v.history); n > 0 && v.history[n-1].Role == domain.RoleUser {
				v.history = v.history[:n-1]
			}
			return v, nil
		}
		v.stream = msg.Stream
		return v, tea.Batch(v.spinner.Tick, waitForToken(msg.Stream))

	case messages.TokenReceived:
		v.partial.WriteString(msg.Token)
		return v, waitForToken(v.stream)

	case messages.AnswerFinished:
		v.streaming = false
		v.stream = nil
		v.cancel = nil
		answer := v.partial.String()
		v.partial.Reset()
		if answer != "" {
			v.history = append(v.history, domain.ChatTurn{
				Role:    domain.RoleAssistant,
				Content: answer,
			})
		}
		v.err = msg.Err
		return v, nil

	case spinner.TickMsg:
		if !v.streaming {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// startAnswer records the user turn and opens an answer stream.
func (v *View) startAnswer(question string) tea.Cmd {
	prior := make([]domain.ChatTurn, len(v.history))
	copy(prior, v.history)

	v.history = append(v.history, domain.ChatTurn{
		Role:    domain.RoleUser,
		Content: question,
	})
	v.streaming = true

	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel
	docID := v.doc.ID
	chat := v.chat

	return func() tea.Msg {
		stream, err := chat.Answer(ctx, question, docID, prior)
		return messages.AnswerStarted{Stream: stream, Err: err}
	}
}

// waitForToken blocks for the next token of the answer stream.
func waitForToken(stream *domain.AnswerStream) tea.Cmd {
	return func() tea.Msg {
		token, ok := <-stream.Tokens()
		if !ok {
			return messages.AnswerFinished{Err: stream.Err()}
		}
		return messages.TokenReceived{Token: token}
	}
}

// stopStreaming cancels an in-flight answer, if any.
func (v *View) stopStreaming() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.streaming = false
}

// View renders the conversation.
func (v *View) View() string {
	var b strings.Builder

	title := "Chat"
	if v.doc != nil {
		title = "Chat - " + v.doc.Filename
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	for _, turn := range v.history {
		switch turn.Role {
		case domain.RoleUser:
			b.WriteString(v.styles.Subtitle.Render("You: "))
		case domain.RoleAssistant:
			b.WriteString(v.styles.Subtitle.Render("Inkwell: "))
		}
		b.WriteString(v.styles.Normal.Render(turn.Content))
		b.WriteString("\n\n")
	}

	if v.streaming {
		b.WriteString(v.styles.Subtitle.Render("Inkwell: "))
		b.WriteString(v.styles.Normal.Render(v.partial.String()))
		b.WriteString(" " + v.spinner.View())
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.InputField.Render(v.input.View()))
	b.WriteString("\n")
	if v.streaming {
		b.WriteString(v.styles.Help.Render("[Esc] Stop generating  [Ctrl+C] Quit"))
	} else {
		b.WriteString(v.styles.Help.Render("[Enter] Ask  [Esc] Back to documents  [Ctrl+C] Quit"))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	v.input.Width = inputWidth
}

// History returns the conversation so far.
func (v *View) History() []domain.ChatTurn {
	return v.history
}

// Streaming returns whether an answer is being generated.
func (v *View) Streaming() bool {
	return v.streaming
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}
