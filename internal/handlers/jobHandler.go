package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
	"github.com/akolanti/DocChatAPI/internal/domain/jobModel"
	"github.com/akolanti/DocChatAPI/internal/job"
	"github.com/akolanti/DocChatAPI/internal/metrics"
	"github.com/akolanti/DocChatAPI/internal/retrieval"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

var (
	handlerInstance  *JobHandler //private singleton
	retrievalService retrieval.Service
	documentStore    docModel.ChunkStore
	once             sync.Once
	logJH            *logger_i.Logger
)

type JobHandler struct {
	service *job.Service
}

// InitHandlers wires every handler in this package, ingestion goes through
// the job queue while chat and document reads hit their services directly
func InitHandlers(jobService *job.Service, retrieval retrieval.Service, store docModel.ChunkStore) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}
		retrievalService = retrieval
		documentStore = store

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logDH = logger_i.NewLogger("DocumentHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.CurrentStep = jobModel.IngestInit
	_job.JobPayload.IngestFileName = newJob.documentName
	_job.JobPayload.IngestPath = newJob.documentSource

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//ingestion hits disk and external parsers so every queued document asks
	//the dispatcher for another worker, capped by MaxWorkerCount
	//idle workers retire on their own so the pool shrinks back down
	atomic.AddInt64(&h.service.RequestCount, 1)
	metrics.StartDispatcherSignalCount() //metrics
	h.service.DispatcherChannel <- true
}
