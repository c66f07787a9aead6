package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
)

// mockLibrary is a test double for driving.LibraryService.
type mockLibrary struct {
	docs      map[string]domain.Document
	order     []string
	uploadErr error
}

func newMockLibrary() *mockLibrary {
	return &mockLibrary{docs: make(map[string]domain.Document)}
}

func (m *mockLibrary) add(doc domain.Document) {
	m.docs[doc.ID] = doc
	m.order = append(m.order, doc.ID)
}

func (m *mockLibrary) Upload(_ context.Context, filename string, _ []byte) (*domain.Document, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	doc := domain.Document{
		ID:         "doc-1",
		Filename:   filename,
		ChunkCount: 4,
		CreatedAt:  time.Now(),
	}
	m.add(doc)
	return &doc, nil
}

func (m *mockLibrary) Get(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *mockLibrary) List(_ context.Context) ([]domain.Document, error) {
	out := make([]domain.Document, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.docs[id])
	}
	return out, nil
}

func (m *mockLibrary) Remove(_ context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

// mockRetriever is a test double for driving.RetrieverService.
type mockRetriever struct {
	results []domain.ScoredChunk
	err     error
}

func (m *mockRetriever) Retrieve(_ context.Context, _, _ string, _ int) ([]domain.ScoredChunk, error) {
	return m.results, m.err
}

// mockChat is a test double for driving.ChatService.
type mockChat struct {
	tokens    []string
	streamErr error
	err       error
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
		stream.Finish(m.streamErr)
	}()
	return stream, nil
}

func newTestServer(lib *mockLibrary, ret *mockRetriever, chat *mockChat) *httptest.Server {
	if lib == nil {
		lib = newMockLibrary()
	}
	if ret == nil {
		ret = &mockRetriever{}
	}
	if chat == nil {
		chat = &mockChat{}
	}
	return httptest.NewServer(NewRouter(NewHandler(lib, ret, chat)))
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestHandleUpload(t *testing.T) {
	lib := newMockLibrary()
	srv := newTestServer(lib, nil, nil)
	defer srv.Close()

	body, contentType := multipartBody(t, "file", "report.pdf", []byte("%PDF-1.4"))
	resp, err := http.Post(srv.URL+"/api/documents", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var doc documentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "report.pdf", doc.Filename)
	assert.Equal(t, 4, doc.ChunkCount)
}

func TestHandleUpload_MissingFile(t *testing.T) {
	srv := newTestServer(nil, nil, nil)
	defer srv.Close()

	body, contentType := multipartBody(t, "wrong_field", "report.pdf", []byte("%PDF-1.4"))
	resp, err := http.Post(srv.URL+"/api/documents", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleUpload_UnreadablePDF(t *testing.T) {
	lib := newMockLibrary()
	lib.uploadErr = domain.ErrUnreadablePDF
	srv := newTestServer(lib, nil, nil)
	defer srv.Close()

	body, contentType := multipartBody(t, "file", "broken.pdf", []byte("not a pdf"))
	resp, err := http.Post(srv.URL+"/api/documents", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleUpload_EmbeddingDown(t *testing.T) {
	lib := newMockLibrary()
	lib.uploadErr = domain.ErrEmbeddingUnavailable
	srv := newTestServer(lib, nil, nil)
	defer srv.Close()

	body, contentType := multipartBody(t, "file", "report.pdf", []byte("%PDF-1.4"))
	resp, err := http.Post(srv.URL+"/api/documents", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHandleListDocuments(t *testing.T) {
	lib := newMockLibrary()
	lib.add(domain.Document{ID: "a", Filename: "a.pdf"})
	lib.add(domain.Document{ID: "b", Filename: "b.pdf"})
	srv := newTestServer(lib, nil, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/documents")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var docs []documentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
}

func TestHandleGetDocument_NotFound(t *testing.T) {
	srv := newTestServer(nil, nil, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/documents/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleDeleteDocument(t *testing.T) {
	lib := newMockLibrary()
	lib.add(domain.Document{ID: "a", Filename: "a.pdf"})
	srv := newTestServer(lib, nil, nil)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/documents/a", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, lib.docs)
}

func TestHandleSearch(t *testing.T) {
	ret := &mockRetriever{results: []domain.ScoredChunk{
		{Chunk: domain.Chunk{Content: "first passage", Position: 2}, Score: 0.9},
		{Chunk: domain.Chunk{Content: "second passage", Position: 0}, Score: 0.7},
	}}
	srv := newTestServer(nil, ret, nil)
	defer srv.Close()

	body := strings.NewReader(`{"query":"q","document_id":"doc-1","top_k":2}`)
	resp, err := http.Post(srv.URL+"/api/search", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var results []searchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	require.Len(t, results, 2)
	assert.Equal(t, "first passage", results[0].Content)
	assert.InDelta(t, 0.9, results[0].Score, 1e-9)
}

func TestHandleSearch_MissingFields(t *testing.T) {
	srv := newTestServer(nil, nil, nil)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/search", "application/json", strings.NewReader(`{"query":"q"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleChat_StreamsSSE(t *testing.T) {
	chat := &mockChat{tokens: []string{"Hello", " world"}}
	srv := newTestServer(nil, nil, chat)
	defer srv.Close()

	body := strings.NewReader(`{"question":"hi","document_id":"doc-1"}`)
	resp, err := http.Post(srv.URL+"/api/chat", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "event: token")
	assert.Contains(t, raw, `{"data":"Hello"}`)
	assert.Contains(t, raw, `{"data":" world"}`)
	assert.Contains(t, raw, "event: done")
	assert.NotContains(t, raw, "event: error")
}

func TestHandleChat_UnknownDocument(t *testing.T) {
	chat := &mockChat{err: domain.ErrDocumentNotIndexed}
	srv := newTestServer(nil, nil, chat)
	defer srv.Close()

	body := strings.NewReader(`{"question":"hi","document_id":"missing"}`)
	resp, err := http.Post(srv.URL+"/api/chat", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleChat_MidStreamError(t *testing.T) {
	chat := &mockChat{
		tokens:    []string{"partial"},
		streamErr: errors.Join(domain.ErrGenerationFailed, errors.New("connection reset")),
	}
	srv := newTestServer(nil, nil, chat)
	defer srv.Close()

	body := strings.NewReader(`{"question":"hi","document_id":"doc-1"}`)
	resp, err := http.Post(srv.URL+"/api/chat", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Headers were already sent; the failure arrives as an SSE event.
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, `{"data":"partial"}`)
	assert.Contains(t, raw, "event: error")
	assert.NotContains(t, raw, "event: done")
}

func TestHandleHealth(t *testing.T) {
	lib := newMockLibrary()
	lib.add(domain.Document{ID: "a"})
	srv := newTestServer(lib, nil, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])
	assert.EqualValues(t, 1, health["document_count"])
}
