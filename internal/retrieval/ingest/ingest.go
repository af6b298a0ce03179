package ingest

import (
	"context"
	"os"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
	"github.com/akolanti/DocChatAPI/internal/domain/jobModel"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

var logger *logger_i.Logger

// ProcessDocumentIngestion runs one uploaded file through extraction, chunking
// and persistence. The document id is the job id, the record and its chunks
// land in the store together or not at all.
func ProcessDocumentIngestion(ctx context.Context, job jobModel.Job, chunker *Chunker, store docModel.ChunkStore) jobModel.Job {
	logger = logger_i.NewLogger("Document Ingestion ")
	if traceId, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		logger.With("traceId", traceId)
	}

	docName := job.JobPayload.IngestFileName
	docPath := job.JobPayload.IngestPath

	logger.Debug("Processing document", "filename", docName, "path", docPath)

	job.CurrentStep = jobModel.Extracting
	docType := getDocType(docPath)
	logger.Debug("Processing document", "type", docType)
	if docType == docModel.ERR {
		logger.Error("Unsupported document type", "path", docPath)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Unsupported document type"
		return job
	}

	text, err := extractText(docPath, docType)
	if err != nil {
		logger.Error("Error processing document", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Error extracting document content"
		return job
	}

	//an empty document is still a document, it just has no chunks
	job.CurrentStep = jobModel.Chunking
	chunks := chunker.Split(text, job.Id)
	logger.Debug("Processing document", "Number of chunks: ", len(chunks))

	job.CurrentStep = jobModel.Persisting
	doc, err := buildDocumentRecord(job.Id, docPath, docName, text, len(chunks))
	if err != nil {
		logger.Error("Error building document record", "error", err)
		job.Status = jobModel.JobStatusError
		return job
	}

	err = store.PutDocument(ctx, doc, chunks)
	if err != nil {
		logger.Error("Error persisting document", "error", err)
		job.Status = jobModel.JobStatusError
		return job
	}

	err = os.Remove(docPath)
	if err != nil {
		logger.Error("Error removing file", "error", err)
	}

	job.JobPayload.DocumentId = doc.Id
	job.JobPayload.ChunkCount = len(chunks)
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	return job
}
