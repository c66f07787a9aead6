// Package picker provides the document selection view for the TUI.
package picker

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inkwell-ai/inkwell/internal/adapters/driving/tui/messages"
	"github.com/inkwell-ai/inkwell/internal/adapters/driving/tui/styles"
	"github.com/inkwell-ai/inkwell/internal/core/domain"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driving"
)

// View represents the document picker view.
type View struct {
	styles   *styles.Styles
	library  driving.LibraryService
	ctx      context.Context
	docs     []domain.Document
	selected int
	err      error
	loaded   bool
	width    int
	height   int
}

// NewView creates a new document picker view.
func NewView(s *styles.Styles, library driving.LibraryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:  s,
		library: library,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the document library.
func (v *View) Init() tea.Cmd {
	return v.loadDocuments
}

// loadDocuments fetches the library listing.
func (v *View) loadDocuments() tea.Msg {
	docs, err := v.library.List(v.ctx)
	return messages.DocumentsLoaded{Documents: docs, Err: err}
}

// Update handles messages for the picker view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.DocumentsLoaded:
		v.loaded = true
		v.docs = msg.Documents
		v.err = msg.Err
		if v.selected >= len(v.docs) {
			v.selected = 0
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.docs)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			if len(v.docs) == 0 {
				return v, nil
			}
			doc := v.docs[v.selected]
			return v, func() tea.Msg {
				return messages.DocumentPicked{Document: doc}
			}

		case "r":
			return v, v.loadDocuments

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the document list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Inkwell"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Pick a document to chat with"))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case !v.loaded:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
		b.WriteString("\n")
	case len(v.docs) == 0:
		b.WriteString(v.styles.Muted.Render("No documents indexed yet. Upload one via the API first."))
		b.WriteString("\n")
	default:
		for i, doc := range v.docs {
			cursor := "  "
			line := fmt.Sprintf("%s  (%d chunks, %s)",
				doc.Filename, doc.ChunkCount, doc.CreatedAt.Format("2006-01-02"))

			if i == v.selected {
				cursor = "> "
				b.WriteString(cursor + v.styles.Selected.Render(line))
			} else {
				b.WriteString(cursor + v.styles.Normal.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Chat  [r] Reload  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Documents returns the loaded documents.
func (v *View) Documents() []domain.Document {
	return v.docs
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}
