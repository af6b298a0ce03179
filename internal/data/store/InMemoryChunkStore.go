package store

import (
	"context"
	"sync"

	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

var inMemChunkLogger = logger_i.NewLogger("InMem ChunkStore")

// InMemoryChunkStore keeps everything behind a single lock so a put or
// delete is an atomic snapshot replace from any reader's perspective.
// docOrder mirrors the Redis store's insertion-ordered index.
type InMemoryChunkStore struct {
	lock     *sync.RWMutex
	docMap   map[string]docModel.Document
	chunkMap map[string][]docModel.Chunk
	docOrder []string
}

func InitInMemoryChunkStore() *InMemoryChunkStore {
	return &InMemoryChunkStore{
		lock:     new(sync.RWMutex),
		docMap:   make(map[string]docModel.Document),
		chunkMap: make(map[string][]docModel.Chunk),
	}
}

func (store *InMemoryChunkStore) PutDocument(ctx context.Context, doc docModel.Document, chunks []docModel.Chunk) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	if _, known := store.docMap[doc.Id]; !known {
		store.docOrder = append(store.docOrder, doc.Id)
	}
	store.docMap[doc.Id] = doc
	store.chunkMap[doc.Id] = chunks
	inMemChunkLogger.Info(doc.Id, " : Saved document to store", "chunks", len(chunks))
	return nil
}

func (store *InMemoryChunkStore) GetDocument(ctx context.Context, docId string) (docModel.Document, bool) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	doc, found := store.docMap[docId]
	return doc, found
}

func (store *InMemoryChunkStore) GetChunks(ctx context.Context, docId string) ([]docModel.Chunk, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	chunks, found := store.chunkMap[docId]
	if !found {
		return nil, nil
	}
	//copy so callers cannot reorder or grow the stored sequence
	out := make([]docModel.Chunk, len(chunks))
	copy(out, chunks)
	return out, nil
}

func (store *InMemoryChunkStore) ListDocuments(ctx context.Context) ([]docModel.Document, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()

	docs := make([]docModel.Document, 0, len(store.docOrder))
	for _, id := range store.docOrder {
		if doc, found := store.docMap[id]; found {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (store *InMemoryChunkStore) DeleteDocument(ctx context.Context, docId string) (bool, error) {
	store.lock.Lock()
	defer store.lock.Unlock()

	_, found := store.docMap[docId]
	if !found {
		return false, nil
	}
	delete(store.docMap, docId)
	delete(store.chunkMap, docId)
	for i, id := range store.docOrder {
		if id == docId {
			store.docOrder = append(store.docOrder[:i], store.docOrder[i+1:]...)
			break
		}
	}
	return true, nil
}
