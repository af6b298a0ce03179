package retrieval

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
	"github.com/akolanti/DocChatAPI/internal/domain/jobModel"
	"github.com/akolanti/DocChatAPI/internal/metrics"
	"github.com/akolanti/DocChatAPI/internal/retrieval/ingest"
	"github.com/akolanti/DocChatAPI/internal/retrieval/synthesis"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - Real work happens down low bruh
  - This is the PUBLIC contract.
  - It defines the "behavior" (what handlers and the worker can do).
  - We expose this to keep callers decoupled from our specific logic.

2. service (Private Struct):
  - down low stuff
  - This is the PRIVATE implementation.
  - It holds the "state" (chunk store and synthesis clients).
  - It is lowercase to prevent external packages from accessing our
    internal dependencies (store, synth) directly.

3. Pointer Receiver (*service):
  - By defining methods on (*service), the struct IMPLICITLY satisfies
    the Service interface.
  - if it quacks like a duck, -it's a duck (Duck Typing)

4. Dependency Injection (NewService):
  - This constructor links the private struct to the public interface.
  - It allows us to swap real stores for mocks during testing without
    changing the callers' code.
*/

// casualResponses short-circuit small talk, no retrieval happens for these
var casualResponses = map[string]string{
	"thanks":    "You're welcome! Feel free to ask me any other questions about your documents.",
	"thank you": "You're very welcome! I'm here to help with any questions about your documents.",
	"good":      "Great! Let me know if you have any other questions about your documents.",
	"ok":        "Alright! Feel free to ask me anything else about your documents.",
	"hello":     "Hello! I'm ready to help you with questions about your uploaded documents.",
	"hi":        "Hi there! How can I help you analyze your documents today?",
}

// broadSearchTerms are tried one at a time once the question itself finds nothing
var broadSearchTerms = []string{"summary", "main", "important", "key", "about", "topic"}

const noMatchAnswer = "I couldn't find relevant information in your documents to answer that question. " +
	"Please make sure your documents contain content related to your query."

// Answer is what a question comes back as, whether it went through a model
// or the extractive fallback
type Answer struct {
	Answer     string   `json:"answer"`
	Sources    []Source `json:"sources"`
	Confidence float64  `json:"confidence"`
	ChunksUsed int      `json:"chunks_used"`
}

type Source struct {
	Document       string `json:"document"`
	Page           string `json:"page"`
	ChunkId        string `json:"chunk_id"`
	RelevanceScore int    `json:"relevance_score"`
	Preview        string `json:"preview"`
}

type Status struct {
	SynthesisAvailable bool
	Documents          []docModel.Document
}

// Service Handlers and the worker only call this service - they don't need to
// know the store or the synthesis backend
type Service interface {
	AnswerQuestion(ctx context.Context, question string, documentIds []string) (Answer, error)
	SearchChunks(ctx context.Context, question string, documentIds []string) ([]docModel.ScoredChunk, error)
	Status(ctx context.Context) (Status, error)
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	store    docModel.ChunkStore
	synth    synthesis.Provider
	expander *QueryExpander
	chunker  *ingest.Chunker
	logger   *logger_i.Logger
}

// NewService constructor
func NewService(store docModel.ChunkStore, synth synthesis.Provider, chunker *ingest.Chunker) Service {
	return &service{
		store:    store,
		synth:    synth,
		expander: NewQueryExpander(),
		chunker:  chunker,
		logger:   logger_i.NewLogger("Retrieval Service :"),
	}
}

func (s *service) AnswerQuestion(ctx context.Context, question string, documentIds []string) (Answer, error) {
	inMethodLogger := s.withTrace(ctx)

	if reply, ok := casualReply(question); ok {
		return Answer{Answer: reply, Sources: []Source{}, Confidence: 1.0}, nil
	}

	chunks, err := s.SearchChunks(ctx, question, documentIds)
	if err != nil {
		return Answer{}, err
	}

	if len(chunks) == 0 {
		inMethodLogger.Debug("AnswerQuestion", "no chunks for", question)
		return Answer{Answer: noMatchAnswer, Sources: []Source{}}, nil
	}

	answer := s.executeSynthesisStep(ctx, inMethodLogger, question, chunks)

	confidence := float64(len(chunks)) / float64(config.MaxSourceChunks)
	if confidence > 1.0 {
		confidence = 1.0
	}

	return Answer{
		Answer:     answer,
		Sources:    s.formatSources(ctx, chunks),
		Confidence: confidence,
		ChunksUsed: len(chunks),
	}, nil
}

// SearchChunks scores the question against every candidate chunk, then walks
// a ladder of progressively broader retries so a non-empty corpus always
// produces something to read
func (s *service) SearchChunks(ctx context.Context, question string, documentIds []string) ([]docModel.ScoredChunk, error) {
	inMethodLogger := s.withTrace(ctx)

	results, err := s.executeScoreStep(ctx, inMethodLogger, question, documentIds)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 || question == "" {
		return results, nil
	}

	inMethodLogger.Debug("SearchChunks", "no direct results for", question)

	// single informative words from the question
	for _, word := range strings.Fields(question) {
		if len(word) <= config.MinFallbackTokenLength {
			continue
		}
		results, err = s.executeScoreStep(ctx, inMethodLogger, strings.ToLower(word), documentIds)
		if err != nil {
			return nil, err
		}
		if len(results) > 0 {
			inMethodLogger.Debug("SearchChunks", "matched on word", word)
			return results, nil
		}
	}

	// broad sweep
	for _, term := range broadSearchTerms {
		results, err = s.executeScoreStep(ctx, inMethodLogger, term, documentIds)
		if err != nil {
			return nil, err
		}
		if len(results) > 0 {
			inMethodLogger.Debug("SearchChunks", "matched on broad term", term)
			return results, nil
		}
	}

	// last resort: leading chunks of each document
	inMethodLogger.Debug("SearchChunks", "falling back to", "leading chunks")
	return s.executeLeadingChunksStep(ctx, documentIds)
}

func (s *service) Status(ctx context.Context) (Status, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{SynthesisAvailable: s.synth != nil, Documents: docs}, nil
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Document_ingestion", time.Since(start)) }()
	j := ingest.ProcessDocumentIngestion(ctx, job, s.chunker, s.store)
	if j.Status != jobModel.JobStatusComplete {
		return s.jobError(j, errors.New("ingest Document Failed"), "INGESTION_FAILURE", true)
	}
	return j
}

//private methods

func casualReply(question string) (string, bool) {
	q := strings.TrimSpace(strings.ToLower(question))
	for word, response := range casualResponses {
		if q == word || q == word+"!" || q == word+"." {
			return response, true
		}
	}
	return "", false
}
