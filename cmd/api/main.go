// @title           Document Chat API
// @version         1.0
// @description     Document upload, keyword search and Q&A over your own files.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/data/store"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
	jobmodel "github.com/akolanti/DocChatAPI/internal/domain/jobModel"
	"github.com/akolanti/DocChatAPI/internal/handlers"
	"github.com/akolanti/DocChatAPI/internal/job"
	"github.com/akolanti/DocChatAPI/internal/retrieval"
	"github.com/akolanti/DocChatAPI/internal/retrieval/ingest"
	"github.com/akolanti/DocChatAPI/internal/retrieval/synthesis"
	"github.com/akolanti/DocChatAPI/internal/retrieval/synthesis/gemini"
	"github.com/akolanti/DocChatAPI/internal/retrieval/synthesis/groq"
	"github.com/akolanti/DocChatAPI/internal/server"
	"github.com/akolanti/DocChatAPI/internal/worker"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init stores, checking the concrete pointers before they land in an
	//interface so a failed init still reads as nil
	redisJobStore := store.GetRedisJobStore(serviceContext)
	redisChunkStore := store.GetRedisChunkStore(serviceContext)

	var jobStore jobmodel.JobStore
	var chunkStore docModel.ChunkStore
	if redisJobStore != nil && redisChunkStore != nil {
		jobStore = redisJobStore
		chunkStore = redisChunkStore
	} else if config.FALLBACK_REDIS_TO_INTERNALSTORE {
		logger.Error("Redis stores are offline, falling back to in-memory stores")
		jobStore = store.InitInMemoryJobStore()
		chunkStore = store.InitInMemoryChunkStore()
	} else {
		logger.Error("Redis stores are offline. Shutting down.")
		return
	}

	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	//synthesis backend: Groq first, Gemini second, nil means extractive answers only
	var synthProvider synthesis.Provider = groq.GetGroqClient(serviceContext, config.GroqModelName, os.Getenv("GROQ_API_KEY"))
	if synthProvider == nil {
		synthProvider = gemini.GetGeminiClient(serviceContext, config.GeminiModelName, os.Getenv("GEMINI_API_KEY"))
	}
	if synthProvider == nil {
		logger.Info("No synthesis backend configured, answers use the extractive fallback")
	}

	chunker, err := ingest.NewChunker(config.ChunkSize, config.ChunkOverlap, ingest.NewKeywordExtractor())
	if err != nil {
		logger.Error("Invalid chunking configuration. Shutting down.", "error", err)
		return
	}

	retrievalService := retrieval.NewService(chunkStore, synthProvider, chunker)

	handlers.InitHandlers(service, retrievalService, chunkStore)

	//init worker pool
	worker.InitServices(service, retrievalService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
