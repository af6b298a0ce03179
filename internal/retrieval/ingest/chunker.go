package ingest

import (
	"fmt"
	"strings"

	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
)

//splitter

// sentenceBreaks are tried in order, the first one with a late enough hit wins
var sentenceBreaks = []string{". ", "! ", "? ", "\n\n"}

// snapWindow is how far back from the size boundary a break is searched for
const snapWindow = 200

type Chunker struct {
	size      int
	overlap   int
	extractor *KeywordExtractor
}

func NewChunker(size int, overlap int, extractor *KeywordExtractor) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", docModel.ErrBadChunkConfig, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: overlap %d for size %d", docModel.ErrBadChunkConfig, overlap, size)
	}
	return &Chunker{size: size, overlap: overlap, extractor: extractor}, nil
}

// Split cuts text into overlapping chunks and tags each with its keywords.
// Start and end offsets are byte positions into the original text, recorded
// before trimming so a chunk can always be located again.
func (c *Chunker) Split(text string, documentId string) []docModel.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []docModel.Chunk
	start := 0
	index := 0

	for start < len(text) {
		end := start + c.size
		if end < len(text) {
			end = c.snapToBreak(text, start, end)
		} else {
			end = len(text)
		}

		content := strings.TrimSpace(text[start:end])
		if content != "" {
			chunks = append(chunks, docModel.Chunk{
				Id:         fmt.Sprintf("%s_chunk_%d", documentId, index),
				DocumentId: documentId,
				Content:    content,
				ChunkIndex: index,
				Keywords:   c.extractor.Extract(content),
				StartPos:   start,
				EndPos:     end,
				Length:     len(content),
			})
			index++
		}

		// next start overlaps the tail of this chunk, whichever of the two
		// candidates moves furthest keeps the loop advancing
		next := start + c.size - c.overlap
		if fromEnd := end - c.overlap; fromEnd > next {
			next = fromEnd
		}
		start = next
	}

	return chunks
}

// snapToBreak pulls end back to a sentence boundary near the size limit, as
// long as the resulting chunk keeps at least half the configured size
func (c *Chunker) snapToBreak(text string, start int, end int) int {
	lo := start + c.size - snapWindow
	if lo < 0 {
		lo = 0
	}
	for _, br := range sentenceBreaks {
		pos := strings.LastIndex(text[lo:end], br)
		if pos < 0 {
			continue
		}
		if at := lo + pos; at > start+c.size/2 {
			return at + len(br)
		}
	}
	return end
}
