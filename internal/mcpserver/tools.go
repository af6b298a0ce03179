package mcpserver

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/DocChatAPI/internal/adapter"
	"github.com/akolanti/DocChatAPI/internal/adapter/utils"
	"github.com/akolanti/DocChatAPI/internal/api"
	"github.com/akolanti/DocChatAPI/internal/config"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query       string   `json:"query" jsonschema:"keyword query to match against document chunks"`
	DocumentIds []string `json:"document_ids,omitempty" jsonschema:"restrict the search to these document ids"`
}

// SearchOutput is the output schema for the search tool. Results carry the
// same shape the HTTP search endpoint returns.
type SearchOutput struct {
	Results []api.SearchResult `json:"results"`
	Count   int                `json:"count"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question    string   `json:"question" jsonschema:"the question to answer from the uploaded documents"`
	DocumentIds []string `json:"document_ids,omitempty" jsonschema:"restrict the answer to these document ids"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Keyword search across the uploaded documents, returns scored chunks",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the uploaded documents, citing source chunks",
	}, s.handleAsk)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	ctx = withTrace(ctx)
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchOutput{}, errors.New("search query cannot be empty")
	}

	chunks, err := s.retrieval.SearchChunks(ctx, input.Query, input.DocumentIds)
	if err != nil {
		s.logger.Error("search tool failed", "error", err)
		return nil, SearchOutput{}, err
	}

	results := adapter.ToSearchResults(chunks)
	return nil, SearchOutput{Results: results, Count: len(results)}, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, api.ChatResponse, error) {
	ctx = withTrace(ctx)
	if strings.TrimSpace(input.Question) == "" {
		return nil, api.ChatResponse{}, errors.New("question cannot be empty")
	}

	answer, err := s.retrieval.AnswerQuestion(ctx, input.Question, input.DocumentIds)
	if err != nil {
		s.logger.Error("ask tool failed", "error", err)
		return nil, api.ChatResponse{}, err
	}

	return nil, adapter.ToChatResponse(answer), nil
}

// withTrace mints a trace id per tool call, stdio calls never pass through
// the HTTP middleware
func withTrace(ctx context.Context) context.Context {
	return context.WithValue(ctx, config.TRACE_ID_KEY, utils.GetNewUUID())
}
