package retrieval

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
	"github.com/akolanti/DocChatAPI/internal/domain/jobModel"
	"github.com/akolanti/DocChatAPI/internal/metrics"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

func (s *service) withTrace(ctx context.Context) *logger_i.Logger {
	if traceId, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		return s.logger.With("traceId", traceId)
	}
	return s.logger
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	return job
}

// targetDocumentIds resolves which documents a query runs against, the whole
// corpus in upload order when the caller named none
func (s *service) targetDocumentIds(ctx context.Context, documentIds []string) ([]string, error) {
	if len(documentIds) > 0 {
		return documentIds, nil
	}

	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.Id)
	}
	return ids, nil
}

func (s *service) executeScoreStep(ctx context.Context, log *logger_i.Logger, query string, documentIds []string) ([]docModel.ScoredChunk, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chunk_scoring", time.Since(start)) }()

	targetIds, err := s.targetDocumentIds(ctx, documentIds)
	if err != nil {
		return nil, err
	}

	var candidates []docModel.Chunk
	for _, id := range targetIds {
		chunks, err := s.store.GetChunks(ctx, id)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, chunks...)
	}

	log.Debug("executeScoreStep", "query", query, "candidate chunks", len(candidates))
	return s.scoreChunks(query, candidates), nil
}

// executeLeadingChunksStep hands back the head of each document. Once enough
// results pile up no further documents are touched, a document's chunks are
// never cut off halfway.
func (s *service) executeLeadingChunksStep(ctx context.Context, documentIds []string) ([]docModel.ScoredChunk, error) {
	targetIds, err := s.targetDocumentIds(ctx, documentIds)
	if err != nil {
		return nil, err
	}

	var results []docModel.ScoredChunk
	for _, id := range targetIds {
		chunks, err := s.store.GetChunks(ctx, id)
		if err != nil {
			return nil, err
		}

		take := config.FallbackChunksPerDoc
		if len(chunks) < take {
			take = len(chunks)
		}
		for _, chunk := range chunks[:take] {
			results = append(results, docModel.ScoredChunk{Chunk: chunk, Score: config.FallbackChunkScore})
		}

		if len(results) >= config.MaxSearchResults {
			break
		}
	}
	return results, nil
}

func (s *service) executeSynthesisStep(ctx context.Context, log *logger_i.Logger, question string, chunks []docModel.ScoredChunk) string {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_synthesis", time.Since(start)) }()

	if s.synth == nil {
		return s.fallbackAnswer(chunks)
	}

	synthCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	answer, err := s.synth.Generate(synthCtx, question, s.buildContext(ctx, chunks))
	if err != nil {
		log.Error("synthesis failed, using extractive fallback", "error", err)
		return s.fallbackAnswer(chunks)
	}
	return strings.TrimSpace(answer)
}

// buildContext renders the top chunks into the labelled blocks the synthesis
// prompt is built from
func (s *service) buildContext(ctx context.Context, chunks []docModel.ScoredChunk) []string {
	take := config.MaxSearchResults
	if len(chunks) < take {
		take = len(chunks)
	}

	blocks := make([]string, 0, take)
	for _, sc := range chunks[:take] {
		docName := "Unknown"
		if doc, ok := s.store.GetDocument(ctx, sc.Chunk.DocumentId); ok {
			docName = doc.OriginalFilename
		}

		content := sc.Chunk.Content
		if len(content) > config.ContextChunkMaxLength {
			content = content[:config.ContextChunkMaxLength] + "..."
		}

		blocks = append(blocks, fmt.Sprintf("Document: %s\nContent: %s\nKeywords: %s\n---",
			docName, content, strings.Join(sc.Chunk.Keywords, ", ")))
	}
	return blocks
}

// fallbackAnswer stitches the top chunks into a readable extract when no
// synthesis backend is reachable
func (s *service) fallbackAnswer(chunks []docModel.ScoredChunk) string {
	if len(chunks) == 0 {
		return "I couldn't find relevant information in your documents to answer that question."
	}

	take := config.MaxSourceChunks
	if len(chunks) < take {
		take = len(chunks)
	}
	parts := make([]string, 0, take)
	for _, sc := range chunks[:take] {
		parts = append(parts, sc.Chunk.Content)
	}

	contextText := strings.Join(parts, " ")
	if len(contextText) > config.FallbackAnswerMaxLength {
		contextText = contextText[:config.FallbackAnswerMaxLength] + "..."
	}

	return fmt.Sprintf("Based on your documents, here's the relevant information I found:\n\n%s\n\n"+
		"Note: Groq API is not available. For better AI-generated answers, please configure the GROQ_API_KEY environment variable.", contextText)
}

// formatSources cites the top chunks, one entry per document
func (s *service) formatSources(ctx context.Context, chunks []docModel.ScoredChunk) []Source {
	sources := []Source{}
	seenDocs := make(map[string]struct{})

	take := config.MaxSourceChunks
	if len(chunks) < take {
		take = len(chunks)
	}
	for _, sc := range chunks[:take] {
		doc, ok := s.store.GetDocument(ctx, sc.Chunk.DocumentId)
		if !ok {
			continue
		}
		if _, dup := seenDocs[sc.Chunk.DocumentId]; dup {
			continue
		}

		preview := sc.Chunk.Content
		if len(preview) > config.SourcePreviewLength {
			preview = preview[:config.SourcePreviewLength] + "..."
		}

		sources = append(sources, Source{
			Document:       doc.OriginalFilename,
			Page:           "N/A",
			ChunkId:        sc.Chunk.Id,
			RelevanceScore: sc.Score,
			Preview:        preview,
		})
		seenDocs[sc.Chunk.DocumentId] = struct{}{}
	}
	return sources
}
