package retrieval_test

import (
	"context"

	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
)

// MockProvider implements synthesis.Provider
type MockProvider struct {
	OnGenerate func(ctx context.Context, question string, contextBlocks []string) (string, error)
}

func (m *MockProvider) Generate(ctx context.Context, question string, contextBlocks []string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, question, contextBlocks)
	}
	return "mocked synthesis response", nil
}

// MockChunkStore implements docModel.ChunkStore
type MockChunkStore struct {
	// Control fields to simulate different behaviors
	OnPutDocument    func(ctx context.Context, doc docModel.Document, chunks []docModel.Chunk) error
	OnGetDocument    func(ctx context.Context, docId string) (docModel.Document, bool)
	OnGetChunks      func(ctx context.Context, docId string) ([]docModel.Chunk, error)
	OnListDocuments  func(ctx context.Context) ([]docModel.Document, error)
	OnDeleteDocument func(ctx context.Context, docId string) (bool, error)
}

func (m *MockChunkStore) PutDocument(ctx context.Context, doc docModel.Document, chunks []docModel.Chunk) error {
	if m.OnPutDocument != nil {
		return m.OnPutDocument(ctx, doc, chunks)
	}
	return nil
}

func (m *MockChunkStore) GetDocument(ctx context.Context, docId string) (docModel.Document, bool) {
	if m.OnGetDocument != nil {
		return m.OnGetDocument(ctx, docId)
	}
	return docModel.Document{}, false
}

func (m *MockChunkStore) GetChunks(ctx context.Context, docId string) ([]docModel.Chunk, error) {
	if m.OnGetChunks != nil {
		return m.OnGetChunks(ctx, docId)
	}
	return nil, nil
}

func (m *MockChunkStore) ListDocuments(ctx context.Context) ([]docModel.Document, error) {
	if m.OnListDocuments != nil {
		return m.OnListDocuments(ctx)
	}
	return nil, nil
}

func (m *MockChunkStore) DeleteDocument(ctx context.Context, docId string) (bool, error) {
	if m.OnDeleteDocument != nil {
		return m.OnDeleteDocument(ctx, docId)
	}
	return false, nil
}
