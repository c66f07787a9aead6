package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/inkwell-ai/inkwell/internal/core/domain"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driving"
	"github.com/inkwell-ai/inkwell/internal/logger"
)

// maxUploadBytes caps the size of an uploaded PDF (32 MiB).
const maxUploadBytes = 32 << 20

// Handler holds the dependencies for HTTP handlers.
type Handler struct {
	library   driving.LibraryService
	retriever driving.RetrieverService
	chat      driving.ChatService
}

// NewHandler creates a new Handler.
func NewHandler(library driving.LibraryService, retriever driving.RetrieverService, chat driving.ChatService) *Handler {
	return &Handler{
		library:   library,
		retriever: retriever,
		chat:      chat,
	}
}

// documentResponse is the wire representation of a document.
type documentResponse struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// searchRequest is the POST /api/search request format.
type searchRequest struct {
	Query      string `json:"query"`
	DocumentID string `json:"document_id"`
	TopK       int    `json:"top_k"`
}

// searchResult is one scored passage in a search response.
type searchResult struct {
	Content  string  `json:"content"`
	Position int     `json:"position"`
	Score    float64 `json:"score"`
}

// chatRequest is the POST /api/chat request format.
type chatRequest struct {
	Question   string        `json:"question"`
	DocumentID string        `json:"document_id"`
	History    []historyTurn `json:"history,omitempty"`
}

// historyTurn is one prior conversation turn.
type historyTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// errorResponse is the error body for non-streaming endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

func toDocumentResponse(doc domain.Document) documentResponse {
	return documentResponse{
		ID:         doc.ID,
		Filename:   doc.Filename,
		ChunkCount: doc.ChunkCount,
		CreatedAt:  doc.CreatedAt,
	}
}

// HandleUpload handles POST /api/documents with a multipart "file" part.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		sendError(w, http.StatusBadRequest, "expected multipart form with a file field")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		sendError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		sendError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	doc, err := h.library.Upload(r.Context(), header.Filename, data)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, toDocumentResponse(*doc))
}

// HandleListDocuments handles GET /api/documents.
func (h *Handler) HandleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.library.List(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}

	out := make([]documentResponse, len(docs))
	for i, doc := range docs {
		out[i] = toDocumentResponse(doc)
	}
	sendJSON(w, http.StatusOK, out)
}

// HandleGetDocument handles GET /api/documents/{id}.
func (h *Handler) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := h.library.Get(r.Context(), id)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, toDocumentResponse(*doc))
}

// HandleDeleteDocument handles DELETE /api/documents/{id}.
func (h *Handler) HandleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.library.Remove(r.Context(), id); err != nil {
		sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSearch handles POST /api/search.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Query == "" || req.DocumentID == "" {
		sendError(w, http.StatusBadRequest, "query and document_id are required")
		return
	}

	results, err := h.retriever.Retrieve(r.Context(), req.Query, req.DocumentID, req.TopK)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	out := make([]searchResult, len(results))
	for i, res := range results {
		out[i] = searchResult{
			Content:  res.Chunk.Content,
			Position: res.Chunk.Position,
			Score:    res.Score,
		}
	}
	sendJSON(w, http.StatusOK, out)
}

// HandleChat handles POST /api/chat. The answer is streamed as
// server-sent events: one "token" event per generated token, then a
// terminal "done" or "error" event. A client disconnect cancels
// generation via the request context.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Question == "" || req.DocumentID == "" {
		sendError(w, http.StatusBadRequest, "question and document_id are required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		sendError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	history := make([]domain.ChatTurn, len(req.History))
	for i, turn := range req.History {
		history[i] = domain.ChatTurn{Role: turn.Role, Content: turn.Content}
	}

	stream, err := h.chat.Answer(r.Context(), req.Question, req.DocumentID, history)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for token := range stream.Tokens() {
		writeSSE(w, "token", token)
		flusher.Flush()
	}

	if err := stream.Err(); err != nil {
		logger.Warn("chat stream failed: %v", err)
		writeSSE(w, "error", err.Error())
	} else {
		writeSSE(w, "done", "")
	}
	flusher.Flush()
}

// HandleHealth handles GET /api/health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	docs, err := h.library.List(r.Context())
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"document_count": len(docs),
	})
}

// writeSSE writes one server-sent event with a JSON payload.
func writeSSE(w io.Writer, event, data string) {
	payload, _ := json.Marshal(map[string]string{"data": data})
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}

// sendServiceError maps domain errors onto HTTP status codes.
func sendServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrDocumentNotIndexed):
		sendError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnreadablePDF):
		sendError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmbeddingUnavailable),
		errors.Is(err, domain.ErrLLMUnavailable),
		errors.Is(err, domain.ErrGenerationFailed):
		sendError(w, http.StatusBadGateway, err.Error())
	default:
		sendError(w, http.StatusInternalServerError, err.Error())
	}
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, errorResponse{Error: message})
}

// sendJSON sends a JSON response with the given status code.
func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
