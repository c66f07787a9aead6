package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput represents a single library document.
type DocumentOutput struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
	CreatedAt  string `json:"created_at"`
}

// QueryDocumentInput is the input schema for the query_document tool.
type QueryDocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the ID of the document to query"`
	Query      string `json:"query" jsonschema:"the question or phrase to find relevant passages for"`
	TopK       int    `json:"top_k,omitempty" jsonschema:"maximum number of passages to return (default 3)"`
}

// QueryDocumentOutput is the output schema for the query_document tool.
type QueryDocumentOutput struct {
	Passages []PassageOutput `json:"passages"`
	Count    int             `json:"count"`
}

// PassageOutput represents a single retrieved passage.
type PassageOutput struct {
	Content  string  `json:"content"`
	Position int     `json:"position"`
	Score    float64 `json:"score"`
}

// AskDocumentInput is the input schema for the ask_document tool.
type AskDocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the ID of the document to ask about"`
	Question   string `json:"question" jsonschema:"the question to answer from the document"`
}

// AskDocumentOutput is the output schema for the ask_document tool.
type AskDocumentOutput struct {
	Answer string `json:"answer"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List all PDF documents in the library",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_document",
		Description: "Find the passages of a document most relevant to a query",
	}, s.handleQueryDocument)

	if s.ports.Chat != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask_document",
			Description: "Answer a question about a document, grounded in its content",
		}, s.handleAskDocument)
	}
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = DocumentOutput{
			DocumentID: docs[i].ID,
			Filename:   docs[i].Filename,
			ChunkCount: docs[i].ChunkCount,
			CreatedAt:  docs[i].CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	return nil, output, nil
}

// handleQueryDocument handles the query_document tool invocation.
func (s *Server) handleQueryDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryDocumentInput,
) (*mcp.CallToolResult, QueryDocumentOutput, error) {
	results, err := s.ports.Retriever.Retrieve(ctx, input.Query, input.DocumentID, input.TopK)
	if err != nil {
		return nil, QueryDocumentOutput{}, err
	}

	output := QueryDocumentOutput{
		Passages: make([]PassageOutput, len(results)),
		Count:    len(results),
	}
	for i := range results {
		output.Passages[i] = PassageOutput{
			Content:  results[i].Chunk.Content,
			Position: results[i].Chunk.Position,
			Score:    results[i].Score,
		}
	}

	return nil, output, nil
}

// handleAskDocument handles the ask_document tool invocation. MCP tool
// results are not streamed, so the answer stream is drained into a
// single string.
func (s *Server) handleAskDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskDocumentInput,
) (*mcp.CallToolResult, AskDocumentOutput, error) {
	stream, err := s.ports.Chat.Answer(ctx, input.Question, input.DocumentID, nil)
	if err != nil {
		return nil, AskDocumentOutput{}, err
	}

	var answer strings.Builder
	for token := range stream.Tokens() {
		answer.WriteString(token)
	}
	if err := stream.Err(); err != nil {
		return nil, AskDocumentOutput{}, err
	}

	return nil, AskDocumentOutput{Answer: answer.String()}, nil
}
