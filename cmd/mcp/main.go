package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/data/store"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
	"github.com/akolanti/DocChatAPI/internal/mcpserver"
	"github.com/akolanti/DocChatAPI/internal/retrieval"
	"github.com/akolanti/DocChatAPI/internal/retrieval/ingest"
	"github.com/akolanti/DocChatAPI/internal/retrieval/synthesis"
	"github.com/akolanti/DocChatAPI/internal/retrieval/synthesis/gemini"
	"github.com/akolanti/DocChatAPI/internal/retrieval/synthesis/groq"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

func main() {

	//stdout carries the MCP stream, logs go to stderr
	logger_i.InitStderr()
	var logger = logger_i.NewLogger("mcp main")

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	var chunkStore docModel.ChunkStore
	if redisChunkStore := store.GetRedisChunkStore(serviceContext); redisChunkStore != nil {
		chunkStore = redisChunkStore
	} else if config.FALLBACK_REDIS_TO_INTERNALSTORE {
		logger.Warn("Redis is offline, using the in-memory store. Documents uploaded through the API will not be visible here")
		chunkStore = store.InitInMemoryChunkStore()
	} else {
		logger.Error("Redis is offline. Shutting down.")
		return
	}

	//synthesis backend: Groq first, Gemini second, nil means extractive answers only
	var synthProvider synthesis.Provider = groq.GetGroqClient(serviceContext, config.GroqModelName, os.Getenv("GROQ_API_KEY"))
	if synthProvider == nil {
		synthProvider = gemini.GetGeminiClient(serviceContext, config.GeminiModelName, os.Getenv("GEMINI_API_KEY"))
	}

	chunker, err := ingest.NewChunker(config.ChunkSize, config.ChunkOverlap, ingest.NewKeywordExtractor())
	if err != nil {
		logger.Error("Invalid chunking configuration", "error", err)
		return
	}

	retrievalService := retrieval.NewService(chunkStore, synthProvider, chunker)

	ctx, stop := signal.NotifyContext(serviceContext, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mcpserver.NewServer(retrievalService).Run(ctx); err != nil {
		logger.Error("MCP server exited", "error", err)
	}
}
