package adapter

import (
	"github.com/akolanti/DocChatAPI/internal/api"
	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
	"github.com/akolanti/DocChatAPI/internal/retrieval"
)

func ToDocumentResponse(doc docModel.Document) api.DocumentResponse {
	return api.DocumentResponse{
		Id:               doc.Id,
		Filename:         doc.Filename,
		OriginalFilename: doc.OriginalFilename,
		FileType:         doc.FileType,
		FileSize:         doc.FileSize,
		Status:           string(doc.Status),
		ChunkCount:       doc.ChunkCount,
		CreatedAt:        doc.CreatedAt,
		ProcessedAt:      doc.ProcessedAt,
	}
}

func ToDocumentResponses(docs []docModel.Document) []api.DocumentResponse {
	out := make([]api.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, ToDocumentResponse(doc))
	}
	return out
}

func ToChunkResponses(chunks []docModel.Chunk) []api.ChunkResponse {
	out := make([]api.ChunkResponse, 0, len(chunks))
	for _, chunk := range chunks {
		out = append(out, api.ChunkResponse{
			Id:         chunk.Id,
			DocumentId: chunk.DocumentId,
			Content:    chunk.Content,
			ChunkIndex: chunk.ChunkIndex,
			Keywords:   nonNilKeywords(chunk.Keywords),
			StartPos:   chunk.StartPos,
			EndPos:     chunk.EndPos,
		})
	}
	return out
}

// ToSearchResults truncates chunk content so search stays a listing, the
// chunks endpoint is there for full bodies
func ToSearchResults(chunks []docModel.ScoredChunk) []api.SearchResult {
	out := make([]api.SearchResult, 0, len(chunks))
	for _, sc := range chunks {
		content := sc.Chunk.Content
		if len(content) > config.SearchResultContentLimit {
			content = content[:config.SearchResultContentLimit] + "..."
		}

		out = append(out, api.SearchResult{
			ChunkId:    sc.Chunk.Id,
			DocumentId: sc.Chunk.DocumentId,
			Content:    content,
			Score:      sc.Score,
			Keywords:   nonNilKeywords(sc.Chunk.Keywords),
		})
	}
	return out
}

func ToChatResponse(answer retrieval.Answer) api.ChatResponse {
	sources := make([]api.SourceResponse, 0, len(answer.Sources))
	for _, src := range answer.Sources {
		sources = append(sources, api.SourceResponse{
			Document:       src.Document,
			Page:           src.Page,
			ChunkId:        src.ChunkId,
			RelevanceScore: src.RelevanceScore,
			Preview:        src.Preview,
		})
	}

	return api.ChatResponse{
		Answer:     answer.Answer,
		Sources:    sources,
		Confidence: answer.Confidence,
		ChunksUsed: answer.ChunksUsed,
	}
}

func ToChatStatusResponse(status retrieval.Status) api.ChatStatusResponse {
	state := "waiting_for_documents"
	if len(status.Documents) > 0 {
		state = "ready"
	}

	summaries := make([]api.DocumentSummary, 0, len(status.Documents))
	for _, doc := range status.Documents {
		summaries = append(summaries, api.DocumentSummary{
			Id:       doc.Id,
			Filename: doc.OriginalFilename,
			Chunks:   doc.ChunkCount,
		})
	}

	return api.ChatStatusResponse{
		Status:             state,
		SynthesisAvailable: status.SynthesisAvailable,
		AvailableDocuments: len(status.Documents),
		Documents:          summaries,
	}
}

// a chunk with nothing but stop words has no keywords, clients still expect an array
func nonNilKeywords(keywords []string) []string {
	if keywords == nil {
		return []string{}
	}
	return keywords
}
