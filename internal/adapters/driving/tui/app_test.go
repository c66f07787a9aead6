package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-ai/inkwell/internal/adapters/driving/tui/messages"
	"github.com/inkwell-ai/inkwell/internal/core/domain"
)

// mockLibrary is a test double for driving.LibraryService.
type mockLibrary struct {
	docs []domain.Document
	err  error
}

func (m *mockLibrary) Upload(_ context.Context, filename string, _ []byte) (*domain.Document, error) {
	return &domain.Document{ID: "new", Filename: filename}, m.err
}

func (m *mockLibrary) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (m *mockLibrary) List(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockLibrary) Remove(_ context.Context, _ string) error {
	return m.err
}

// mockChat is a test double for driving.ChatService.
type mockChat struct {
	tokens []string
	err    error
}

func (m *mockChat) Answer(ctx context.Context, _, _ string, _ []domain.ChatTurn) (*domain.AnswerStream, error) {
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
		stream.Finish(nil)
	}()
	return stream, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(&Ports{
		Library: &mockLibrary{},
		Chat:    &mockChat{},
	})
	require.NoError(t, err)
	return app
}

func TestNewApp(t *testing.T) {
	t.Run("nil library returns error", func(t *testing.T) {
		app, err := NewApp(&Ports{Chat: &mockChat{}})
		require.Error(t, err)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingLibraryService)
	})

	t.Run("nil chat returns error", func(t *testing.T) {
		app, err := NewApp(&Ports{Library: &mockLibrary{}})
		require.Error(t, err)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingChatService)
	})

	t.Run("valid ports creates app", func(t *testing.T) {
		app := newTestApp(t)
		assert.NotNil(t, app)
		assert.Equal(t, messages.ViewPicker, app.CurrentView())
	})
}

func TestApp_WindowSize(t *testing.T) {
	app := newTestApp(t)
	assert.False(t, app.Ready())

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(*App)
	assert.True(t, app.Ready())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_DocumentPickedSwitchesToChat(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.DocumentPicked{
		Document: domain.Document{ID: "doc-1", Filename: "report.pdf"},
	})
	app = model.(*App)
	assert.Equal(t, messages.ViewChat, app.CurrentView())
}

func TestApp_ViewChangedBackToPicker(t *testing.T) {
	app := newTestApp(t)
	app.Update(messages.DocumentPicked{Document: domain.Document{ID: "doc-1"}})

	model, _ := app.Update(messages.ViewChanged{View: messages.ViewPicker})
	app = model.(*App)
	assert.Equal(t, messages.ViewPicker, app.CurrentView())
}

func TestApp_ViewRendersWithoutSize(t *testing.T) {
	app := newTestApp(t)
	assert.Contains(t, app.View(), "Initialising")
}
