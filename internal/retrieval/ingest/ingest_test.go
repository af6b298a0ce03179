package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/data/store"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
	"github.com/akolanti/DocChatAPI/internal/domain/jobModel"
)

func writeUpload(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing upload: %v", err)
	}
	return path
}

func ingestJob(id string, filename string, path string) jobModel.Job {
	return jobModel.Job{
		Id: id,
		JobPayload: jobModel.JobPayload{
			IngestFileName: filename,
			IngestPath:     path,
		},
	}
}

func TestProcessDocumentIngestion_Scenarios(t *testing.T) {
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "ingest-trace")

	chunker, err := NewChunker(config.ChunkSize, config.ChunkOverlap, NewKeywordExtractor())
	if err != nil {
		t.Fatalf("NewChunker failed: %v", err)
	}

	t.Run("Text_File_Success", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()
		content := "Chunking splits text. Keywords come from counting words. Retrieval ranks chunks."
		path := writeUpload(t, "notes.txt", content)

		result := ProcessDocumentIngestion(ctx, ingestJob("job-1", "notes.txt", path), chunker, chunkStore)

		if result.Status != jobModel.JobStatusComplete {
			t.Fatalf("Status got %v, want %v (error: %+v)", result.Status, jobModel.JobStatusComplete, result.Error)
		}
		if result.JobPayload.DocumentId != "job-1" {
			t.Errorf("DocumentId got %s, want job-1", result.JobPayload.DocumentId)
		}
		if result.JobPayload.ChunkCount != 1 {
			t.Errorf("ChunkCount got %d, want 1", result.JobPayload.ChunkCount)
		}

		doc, ok := chunkStore.GetDocument(ctx, "job-1")
		if !ok {
			t.Fatal("document not stored")
		}
		if doc.OriginalFilename != "notes.txt" || doc.FileType != ".txt" {
			t.Errorf("document record got %s / %s", doc.OriginalFilename, doc.FileType)
		}
		if doc.Status != docModel.StatusProcessed || doc.ChunkCount != 1 {
			t.Errorf("document status got %s with %d chunks", doc.Status, doc.ChunkCount)
		}
		if doc.ContentPreview != content {
			t.Errorf("ContentPreview got %q", doc.ContentPreview)
		}

		chunks, err := chunkStore.GetChunks(ctx, "job-1")
		if err != nil || len(chunks) != 1 {
			t.Fatalf("GetChunks got %d chunks, err %v", len(chunks), err)
		}

		// the upload is a temp input, it goes away once the store has the content
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Errorf("upload file still present after ingestion")
		}
	})

	t.Run("Markdown_File_Success", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()
		path := writeUpload(t, "readme.md", "# Setup\n\nInstall the service. Run the binary.")

		result := ProcessDocumentIngestion(ctx, ingestJob("job-2", "readme.md", path), chunker, chunkStore)

		if result.Status != jobModel.JobStatusComplete {
			t.Fatalf("Status got %v, want %v", result.Status, jobModel.JobStatusComplete)
		}
		doc, ok := chunkStore.GetDocument(ctx, "job-2")
		if !ok || doc.FileType != ".md" {
			t.Errorf("document got ok=%v type=%s", ok, doc.FileType)
		}
	})

	t.Run("Long_Text_Multiple_Chunks", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()
		path := writeUpload(t, "long.txt", strings.Repeat("Sentences carry meaning. ", 100))

		result := ProcessDocumentIngestion(ctx, ingestJob("job-3", "long.txt", path), chunker, chunkStore)

		if result.Status != jobModel.JobStatusComplete {
			t.Fatalf("Status got %v, want %v", result.Status, jobModel.JobStatusComplete)
		}
		chunks, _ := chunkStore.GetChunks(ctx, "job-3")
		if len(chunks) < 2 {
			t.Errorf("chunk count got %d, want at least 2", len(chunks))
		}
		if result.JobPayload.ChunkCount != len(chunks) {
			t.Errorf("payload count %d does not match stored %d", result.JobPayload.ChunkCount, len(chunks))
		}
	})

	t.Run("Empty_File_Still_Processes", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()
		path := writeUpload(t, "empty.txt", "")

		result := ProcessDocumentIngestion(ctx, ingestJob("job-4", "empty.txt", path), chunker, chunkStore)

		if result.Status != jobModel.JobStatusComplete {
			t.Fatalf("Status got %v, want %v", result.Status, jobModel.JobStatusComplete)
		}
		if result.JobPayload.ChunkCount != 0 {
			t.Errorf("ChunkCount got %d, want 0", result.JobPayload.ChunkCount)
		}
		doc, ok := chunkStore.GetDocument(ctx, "job-4")
		if !ok || doc.ChunkCount != 0 {
			t.Errorf("document got ok=%v chunks=%d", ok, doc.ChunkCount)
		}
	})

	t.Run("Unsupported_Extension", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()
		path := writeUpload(t, "data.csv", "a,b,c")

		result := ProcessDocumentIngestion(ctx, ingestJob("job-5", "data.csv", path), chunker, chunkStore)

		if result.Status != jobModel.JobStatusError {
			t.Fatalf("Status got %v, want %v", result.Status, jobModel.JobStatusError)
		}
		if _, ok := chunkStore.GetDocument(ctx, "job-5"); ok {
			t.Error("document stored despite unsupported type")
		}
		// nothing extracted, the file stays for inspection
		if _, statErr := os.Stat(path); statErr != nil {
			t.Errorf("upload file missing after failed ingestion: %v", statErr)
		}
	})

	t.Run("Missing_File", func(t *testing.T) {
		chunkStore := store.InitInMemoryChunkStore()

		result := ProcessDocumentIngestion(ctx, ingestJob("job-6", "ghost.txt", filepath.Join(t.TempDir(), "ghost.txt")), chunker, chunkStore)

		if result.Status != jobModel.JobStatusError {
			t.Fatalf("Status got %v, want %v", result.Status, jobModel.JobStatusError)
		}
		if result.Error.Message != "Error extracting document content" {
			t.Errorf("Error message got %q", result.Error.Message)
		}
	})
}
