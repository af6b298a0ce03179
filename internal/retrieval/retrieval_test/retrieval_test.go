package retrieval_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/data/store"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
	"github.com/akolanti/DocChatAPI/internal/domain/jobModel"
	"github.com/akolanti/DocChatAPI/internal/retrieval"
	"github.com/akolanti/DocChatAPI/internal/retrieval/ingest"
	"github.com/akolanti/DocChatAPI/internal/retrieval/synthesis"
)

func newService(t *testing.T, chunkStore docModel.ChunkStore, synth synthesis.Provider) retrieval.Service {
	t.Helper()
	chunker, err := ingest.NewChunker(config.ChunkSize, config.ChunkOverlap, ingest.NewKeywordExtractor())
	if err != nil {
		t.Fatalf("NewChunker failed: %v", err)
	}
	return retrieval.NewService(chunkStore, synth, chunker)
}

func seedDocument(t *testing.T, chunkStore docModel.ChunkStore, id string, filename string, contents ...string) {
	t.Helper()
	extractor := ingest.NewKeywordExtractor()

	chunks := make([]docModel.Chunk, 0, len(contents))
	for i, content := range contents {
		chunks = append(chunks, docModel.Chunk{
			Id:         fmt.Sprintf("%s_chunk_%d", id, i),
			DocumentId: id,
			Content:    content,
			ChunkIndex: i,
			Keywords:   extractor.Extract(content),
			Length:     len(content),
		})
	}

	doc := docModel.Document{
		Id:               id,
		Filename:         id + ".txt",
		OriginalFilename: filename,
		FileType:         ".txt",
		Status:           docModel.StatusProcessed,
		ChunkCount:       len(chunks),
	}
	if err := chunkStore.PutDocument(context.Background(), doc, chunks); err != nil {
		t.Fatalf("seeding %s: %v", id, err)
	}
}

func testCtx() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func TestAnswerQuestion_CasualShortcut(t *testing.T) {
	s := newService(t, store.InitInMemoryChunkStore(), nil)

	tests := []struct {
		question string
		expected string
	}{
		{"thanks", "You're welcome! Feel free to ask me any other questions about your documents."},
		{"Thanks!", "You're welcome! Feel free to ask me any other questions about your documents."},
		{"HI", "Hi there! How can I help you analyze your documents today?"},
		{"ok.", "Alright! Feel free to ask me anything else about your documents."},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got, err := s.AnswerQuestion(testCtx(), tt.question, nil)
			if err != nil {
				t.Fatalf("AnswerQuestion failed: %v", err)
			}
			if got.Answer != tt.expected {
				t.Errorf("Answer got %q, want %q", got.Answer, tt.expected)
			}
			if got.Confidence != 1.0 || got.ChunksUsed != 0 {
				t.Errorf("got confidence %v with %d chunks, want 1.0 and 0", got.Confidence, got.ChunksUsed)
			}
			if got.Sources == nil || len(got.Sources) != 0 {
				t.Errorf("Sources got %v, want empty", got.Sources)
			}
		})
	}
}

func TestAnswerQuestion_NoDocuments(t *testing.T) {
	s := newService(t, store.InitInMemoryChunkStore(), nil)

	got, err := s.AnswerQuestion(testCtx(), "what is in the report", nil)
	if err != nil {
		t.Fatalf("AnswerQuestion failed: %v", err)
	}

	want := "I couldn't find relevant information in your documents to answer that question. " +
		"Please make sure your documents contain content related to your query."
	if got.Answer != want {
		t.Errorf("Answer got %q, want %q", got.Answer, want)
	}
	if got.Confidence != 0 || got.ChunksUsed != 0 {
		t.Errorf("got confidence %v with %d chunks, want zero values", got.Confidence, got.ChunksUsed)
	}
}

func TestAnswerQuestion_FallbackWithoutProvider(t *testing.T) {
	chunkStore := store.InitInMemoryChunkStore()
	seedDocument(t, chunkStore, "doc-a", "report.pdf",
		"The quarterly revenue grew by twelve percent. Cloud costs doubled in the same period.")

	s := newService(t, chunkStore, nil)

	got, err := s.AnswerQuestion(testCtx(), "revenue", nil)
	if err != nil {
		t.Fatalf("AnswerQuestion failed: %v", err)
	}

	if !strings.Contains(got.Answer, "Based on your documents") {
		t.Errorf("Answer missing extract preamble: %q", got.Answer)
	}
	if !strings.Contains(got.Answer, "quarterly revenue") {
		t.Errorf("Answer missing chunk content: %q", got.Answer)
	}
	if got.ChunksUsed != 1 {
		t.Errorf("ChunksUsed got %d, want 1", got.ChunksUsed)
	}
	if got.Confidence != 1.0/3.0 {
		t.Errorf("Confidence got %v, want 1/3", got.Confidence)
	}

	if len(got.Sources) != 1 {
		t.Fatalf("Sources got %d entries, want 1", len(got.Sources))
	}
	src := got.Sources[0]
	if src.Document != "report.pdf" || src.ChunkId != "doc-a_chunk_0" || src.Page != "N/A" {
		t.Errorf("Source got %+v", src)
	}
	if src.RelevanceScore <= 0 {
		t.Errorf("RelevanceScore got %d, want positive", src.RelevanceScore)
	}
	if !strings.HasPrefix(src.Preview, "The quarterly revenue") {
		t.Errorf("Preview got %q", src.Preview)
	}
}

func TestAnswerQuestion_SynthesisProvider(t *testing.T) {
	chunkStore := store.InitInMemoryChunkStore()
	seedDocument(t, chunkStore, "doc-a", "report.pdf",
		"The quarterly revenue grew by twelve percent.")

	var gotQuestion string
	var gotBlocks []string
	provider := &MockProvider{
		OnGenerate: func(ctx context.Context, question string, contextBlocks []string) (string, error) {
			gotQuestion = question
			gotBlocks = contextBlocks
			return "Revenue rose sharply.", nil
		},
	}

	s := newService(t, chunkStore, provider)

	got, err := s.AnswerQuestion(testCtx(), "revenue", nil)
	if err != nil {
		t.Fatalf("AnswerQuestion failed: %v", err)
	}

	if got.Answer != "Revenue rose sharply." {
		t.Errorf("Answer got %q", got.Answer)
	}
	if gotQuestion != "revenue" {
		t.Errorf("provider question got %q", gotQuestion)
	}
	if len(gotBlocks) != 1 {
		t.Fatalf("context blocks got %d, want 1", len(gotBlocks))
	}
	if !strings.Contains(gotBlocks[0], "Document: report.pdf") ||
		!strings.Contains(gotBlocks[0], "Content: The quarterly revenue") ||
		!strings.Contains(gotBlocks[0], "Keywords: ") {
		t.Errorf("context block got %q", gotBlocks[0])
	}
}

func TestAnswerQuestion_SynthesisFailureFallsBack(t *testing.T) {
	chunkStore := store.InitInMemoryChunkStore()
	seedDocument(t, chunkStore, "doc-a", "report.pdf",
		"The quarterly revenue grew by twelve percent.")

	provider := &MockProvider{
		OnGenerate: func(ctx context.Context, question string, contextBlocks []string) (string, error) {
			return "", errors.New("provider down")
		},
	}

	s := newService(t, chunkStore, provider)

	got, err := s.AnswerQuestion(testCtx(), "revenue", nil)
	if err != nil {
		t.Fatalf("AnswerQuestion failed: %v", err)
	}
	if !strings.Contains(got.Answer, "Based on your documents") {
		t.Errorf("Answer should fall back to the extract, got %q", got.Answer)
	}
}

func TestAnswerQuestion_ConfidenceCaps(t *testing.T) {
	chunkStore := store.InitInMemoryChunkStore()
	seedDocument(t, chunkStore, "doc-a", "a.txt",
		"Kubernetes schedules pods.", "Kubernetes rolls out deployments.", "Kubernetes scales replicas.")
	seedDocument(t, chunkStore, "doc-b", "b.txt",
		"Kubernetes mounts volumes.", "Kubernetes restarts containers.")

	s := newService(t, chunkStore, nil)

	got, err := s.AnswerQuestion(testCtx(), "kubernetes", nil)
	if err != nil {
		t.Fatalf("AnswerQuestion failed: %v", err)
	}
	if got.ChunksUsed != 5 {
		t.Errorf("ChunksUsed got %d, want 5", got.ChunksUsed)
	}
	if got.Confidence != 1.0 {
		t.Errorf("Confidence got %v, want capped 1.0", got.Confidence)
	}
}

func TestAnswerQuestion_StoreFailure(t *testing.T) {
	mockStore := &MockChunkStore{
		OnListDocuments: func(ctx context.Context) ([]docModel.Document, error) {
			return nil, errors.New("redis gone")
		},
	}

	s := newService(t, mockStore, nil)

	if _, err := s.AnswerQuestion(testCtx(), "anything", nil); err == nil {
		t.Error("expected store failure to surface, got nil error")
	}
}

func TestSearchChunks_FallbackLadder(t *testing.T) {
	t.Run("Direct_Match", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()
		seedDocument(t, chunkStore, "doc-a", "report.pdf",
			"The quarterly revenue grew by twelve percent.")
		s := newService(t, chunkStore, nil)

		got, err := s.SearchChunks(testCtx(), "revenue", nil)
		if err != nil {
			t.Fatalf("SearchChunks failed: %v", err)
		}
		if len(got) != 1 || got[0].Chunk.Id != "doc-a_chunk_0" {
			t.Fatalf("got %+v, want the revenue chunk", got)
		}
		if got[0].Score <= 2 {
			t.Errorf("direct match score got %d, want better than a floor score", got[0].Score)
		}
	})

	t.Run("Generic_Word_Rescues_Question", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()
		seedDocument(t, chunkStore, "doc-a", "zebras.txt",
			"Zebras gallop across open plains.")
		s := newService(t, chunkStore, nil)

		got, err := s.SearchChunks(testCtx(), "summarize xyzzyplugh", nil)
		if err != nil {
			t.Fatalf("SearchChunks failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("result count got %d, want 1", len(got))
		}
		if got[0].Score != config.GenericQueryFloorScore {
			t.Errorf("score got %d, want floor %d", got[0].Score, config.GenericQueryFloorScore)
		}
	})

	t.Run("Broad_Sweep_Rescues_Gibberish", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()
		seedDocument(t, chunkStore, "doc-a", "zebras.txt",
			"Zebras gallop across open plains.")
		s := newService(t, chunkStore, nil)

		got, err := s.SearchChunks(testCtx(), "xyz123nonexistent", nil)
		if err != nil {
			t.Fatalf("SearchChunks failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("result count got %d, want 1", len(got))
		}
		if got[0].Score != config.GenericQueryFloorScore {
			t.Errorf("score got %d, want floor %d", got[0].Score, config.GenericQueryFloorScore)
		}
	})

	t.Run("Empty_Corpus_Returns_Nothing", func(t *testing.T) {
		s := newService(t, store.InitInMemoryChunkStore(), nil)

		got, err := s.SearchChunks(testCtx(), "xyz123nonexistent", nil)
		if err != nil {
			t.Fatalf("SearchChunks failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("result count got %d, want 0", len(got))
		}
	})

	t.Run("Document_Without_Chunks_Returns_Nothing", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()
		seedDocument(t, chunkStore, "doc-empty", "empty.txt")
		s := newService(t, chunkStore, nil)

		got, err := s.SearchChunks(testCtx(), "xyz123nonexistent", nil)
		if err != nil {
			t.Fatalf("SearchChunks failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("result count got %d, want 0", len(got))
		}
	})

	t.Run("Scoped_To_Requested_Documents", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()
		seedDocument(t, chunkStore, "doc-a", "report.pdf",
			"The quarterly revenue grew by twelve percent.")
		seedDocument(t, chunkStore, "doc-b", "zebras.txt",
			"Zebras gallop across open plains.")
		s := newService(t, chunkStore, nil)

		got, err := s.SearchChunks(testCtx(), "revenue", []string{"doc-b"})
		if err != nil {
			t.Fatalf("SearchChunks failed: %v", err)
		}
		// no revenue in doc-b, the ladder floors its chunks instead of
		// leaking doc-a into the results
		if len(got) == 0 {
			t.Fatal("expected floored results from doc-b")
		}
		for _, sc := range got {
			if sc.Chunk.DocumentId != "doc-b" {
				t.Errorf("result from %s, want doc-b only", sc.Chunk.DocumentId)
			}
		}
	})
}

func TestStatus(t *testing.T) {
	t.Run("Empty_Store", func(t *testing.T) {
		s := newService(t, store.InitInMemoryChunkStore(), nil)

		got, err := s.Status(testCtx())
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}
		if got.SynthesisAvailable {
			t.Error("SynthesisAvailable got true without a provider")
		}
		if len(got.Documents) != 0 {
			t.Errorf("Documents got %d, want 0", len(got.Documents))
		}
	})

	t.Run("Seeded_Store_With_Provider", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()
		seedDocument(t, chunkStore, "doc-a", "report.pdf", "The quarterly revenue grew.")
		s := newService(t, chunkStore, &MockProvider{})

		got, err := s.Status(testCtx())
		if err != nil {
			t.Fatalf("Status failed: %v", err)
		}
		if !got.SynthesisAvailable {
			t.Error("SynthesisAvailable got false with a provider")
		}
		if len(got.Documents) != 1 || got.Documents[0].Id != "doc-a" {
			t.Errorf("Documents got %+v", got.Documents)
		}
	})
}

func TestIngestDocument_Scenarios(t *testing.T) {
	t.Run("Ingestion_Success", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()
		s := newService(t, chunkStore, nil)

		path := filepath.Join(t.TempDir(), "handbook.txt")
		if err := os.WriteFile(path, []byte("Employee handbook. Vacation policy details."), 0644); err != nil {
			t.Fatalf("writing upload: %v", err)
		}

		job := jobModel.Job{
			Id: "ingest-job-1",
			JobPayload: jobModel.JobPayload{
				IngestFileName: "handbook.txt",
				IngestPath:     path,
			},
		}

		result := s.IngestDocument(testCtx(), job)

		if result.Status != jobModel.JobStatusComplete {
			t.Fatalf("Status got %v, want %v (error: %+v)", result.Status, jobModel.JobStatusComplete, result.Error)
		}
		if _, ok := chunkStore.GetDocument(testCtx(), "ingest-job-1"); !ok {
			t.Error("document missing from store after ingestion")
		}
	})

	t.Run("Ingestion_Failure", func(t *testing.T) {
		s := newService(t, store.InitInMemoryChunkStore(), nil)

		job := jobModel.Job{
			Id: "ingest-job-2",
			JobPayload: jobModel.JobPayload{
				IngestFileName: "ghost.txt",
				IngestPath:     filepath.Join(t.TempDir(), "ghost.txt"),
			},
		}

		result := s.IngestDocument(testCtx(), job)

		if result.Status != jobModel.JobStatusError {
			t.Fatalf("Status got %v, want %v", result.Status, jobModel.JobStatusError)
		}
		if result.Error.Code != http.StatusInternalServerError || !result.Error.Retry {
			t.Errorf("Error got %+v, want retryable internal error", result.Error)
		}
	})
}
