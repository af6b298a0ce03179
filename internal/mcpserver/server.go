package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/DocChatAPI/internal/retrieval"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

// Version is reported to clients during the MCP handshake.
const Version = "1.0.0"

// Server exposes the retrieval service as MCP tools, so an agent can search
// and question the uploaded documents without going through the HTTP API.
type Server struct {
	retrieval retrieval.Service
	server    *mcp.Server
	logger    *logger_i.Logger
}

func NewServer(retrievalService retrieval.Service) *Server {
	impl := &mcp.Implementation{
		Name:    "doc-chat",
		Version: Version,
	}

	s := &Server{
		retrieval: retrievalService,
		server:    mcp.NewServer(impl, nil),
		logger:    logger_i.NewLogger("mcp"),
	}

	s.registerTools()
	return s
}

// Run serves tool calls over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
