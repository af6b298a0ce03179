package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/data/redisStore"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

// key layout: one record key and one chunks key per document, so a single
// document's chunk sequence loads without touching any other document.
// doc_index is a list and keeps insertion order across restarts.
const (
	docKeyPrefix    = "doc:"
	chunksKeyPrefix = "chunks:"
	docIndexKey     = "doc_index"
)

type RedisChunkStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisChunkStore(ctx context.Context) *RedisChunkStore {
	backend := redisStore.GetRedisStore(ctx, config.RedisChunkStore)
	if backend == nil {
		return nil
	}
	return &RedisChunkStore{
		store:  backend,
		logger: logger_i.NewLogger("ChunkStore"),
	}
}

func (s *RedisChunkStore) PutDocument(ctx context.Context, doc docModel.Document, chunks []docModel.Chunk) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "doc Id", doc.Id)

	docData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling document: %w", err)
	}
	chunkData, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("marshalling chunks: %w", err)
	}

	known, err := s.store.Exists(ctx, docKeyPrefix+doc.Id)
	if err != nil {
		return err
	}

	//chunks first so the record never points at a missing sequence
	if err := s.store.Set(ctx, chunksKeyPrefix+doc.Id, chunkData, config.RedisChunkStoreTTL); err != nil {
		return err
	}
	if err := s.store.Set(ctx, docKeyPrefix+doc.Id, docData, config.RedisChunkStoreTTL); err != nil {
		return err
	}
	if !known {
		if err := s.store.ListPush(ctx, docIndexKey, doc.Id); err != nil {
			return err
		}
	}
	log.Debug("Saved document and chunks", "chunks", len(chunks))
	return nil
}

func (s *RedisChunkStore) GetDocument(ctx context.Context, docId string) (docModel.Document, bool) {
	var doc docModel.Document
	val, err := s.store.Get(ctx, docKeyPrefix+docId)
	if s.store.IsNil(err) {
		return doc, false
	} else if err != nil {
		s.logger.Error("Error reading document", "doc Id", docId, "error", err)
		return doc, false
	}
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		s.logger.Error("Error unmarshalling document", "doc Id", docId, "error", err)
		return doc, false
	}
	return doc, true
}

func (s *RedisChunkStore) GetChunks(ctx context.Context, docId string) ([]docModel.Chunk, error) {
	val, err := s.store.Get(ctx, chunksKeyPrefix+docId)
	if s.store.IsNil(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var chunks []docModel.Chunk
	if err := json.Unmarshal([]byte(val), &chunks); err != nil {
		return nil, fmt.Errorf("unmarshalling chunks: %w", err)
	}
	return chunks, nil
}

func (s *RedisChunkStore) ListDocuments(ctx context.Context) ([]docModel.Document, error) {
	ids, err := s.store.ListGetAll(ctx, docIndexKey)
	if err != nil {
		return nil, err
	}

	docs := make([]docModel.Document, 0, len(ids))
	for _, id := range ids {
		//tolerate index drift, a missing record just drops out of the listing
		if doc, found := s.GetDocument(ctx, id); found {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (s *RedisChunkStore) DeleteDocument(ctx context.Context, docId string) (bool, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "doc Id", docId)

	removed, err := s.store.Del(ctx, docKeyPrefix+docId, chunksKeyPrefix+docId)
	if err != nil {
		return false, err
	}
	if _, err := s.store.ListRemove(ctx, docIndexKey, docId); err != nil {
		return false, err
	}
	log.Debug("Deleted document", "keys removed", removed)
	return removed > 0, nil
}

func TestChunkStore(store *redisStore.Store) *RedisChunkStore {
	return &RedisChunkStore{
		store:  store,
		logger: logger_i.NewLogger("test chunk store"),
	}
}
