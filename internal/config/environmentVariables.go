package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, stores fall back to in-memory (documents will not survive a restart)
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	//auth - bypass stays on until an API token is provisioned
	NoAuthBypass = true
	AuthToken    = ""

	//chunking
	ChunkSize    = 1000 //target characters per chunk
	ChunkOverlap = 200  //characters re-included at the head of the next chunk

	//keyword extraction
	MaxKeywordsPerChunk = 15

	//retrieval
	MaxSearchResults         = 5
	MaxSourceChunks          = 3 //answers cite at most this many chunks, confidence scales against it
	FallbackChunksPerDoc     = 3 //last-resort tier takes this many leading chunks per document
	FallbackChunkScore       = 1
	GenericQueryFloorScore   = 2
	MinFallbackTokenLength   = 2 //single-word retry skips tokens this short or shorter
	FallbackAnswerMaxLength  = 800
	ContextChunkMaxLength    = 800
	SourcePreviewLength      = 150
	SearchResultContentLimit = 500
	DocumentPreviewLength    = 1000
	DocumentListLimit        = 100 //default page size for the documents listing

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//uploads
	UploadDirName      = "uploaded_documents"
	MaxUploadSizeBytes = 50 << 20 //50MB
	MultipartMemLimit  = 32 << 20

	//synthesis providers
	GroqBaseURL     = "https://api.groq.com/openai/v1"
	GroqModelName   = "llama-3.1-8b-instant"
	GeminiModelName = "gemini-2.5-flash-lite-preview-09-2025"

	ModelTemperature float64 = 0.1
	MaxAnswerTokens  int64   = 500
	ModelContext             = "You are a helpful assistant that answers questions using only the provided document context. " +
		"Write clear, organized answers with simple dash bullet points where it helps. " +
		"If the context does not contain the answer, say so plainly instead of guessing."

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisChunkStore = 0
	RedisJobStore   = 1

	//redis timeouts
	RedisJobStoreTTL = 24 * time.Hour
	//document and chunk entries are the system of record, they never expire
	RedisChunkStoreTTL = 0
)
