package docModel

import (
	"context"
	"time"
)

type DocStatus string
type DocType string

const (
	StatusProcessed DocStatus = "processed"
	StatusFailed    DocStatus = "failed"
)

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var MD DocType = "MD"
var ERR DocType = "ERROR"

type Document struct {
	Id               string    `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileType         string    `json:"file_type"` //lower-cased extension, ".pdf" etc
	FileSize         int64     `json:"file_size"`
	Status           DocStatus `json:"status"`
	ChunkCount       int       `json:"chunk_count"`
	CreatedAt        time.Time `json:"created_at"`
	ProcessedAt      time.Time `json:"processed_at"`
	ContentPreview   string    `json:"content_preview"`
}

type Chunk struct {
	Id         string   `json:"id"`
	DocumentId string   `json:"document_id"`
	Content    string   `json:"content"`
	ChunkIndex int      `json:"chunk_index"`
	Keywords   []string `json:"keywords"`
	StartPos   int      `json:"start_pos"`
	EndPos     int      `json:"end_pos"`
	Length     int      `json:"length"`
}

// ScoredChunk pairs a stored chunk with a per-query score. The score lives
// here and never on the persisted Chunk, so concurrent queries cannot step
// on each other's rankings.
type ScoredChunk struct {
	Chunk Chunk `json:"chunk"`
	Score int   `json:"score"`
}

// ChunkStore owns the document records and their ordered chunk sequences.
// PutDocument replaces any previous record and chunks for the same id in one
// call. DeleteDocument removes both together and reports whether the id was
// known. GetChunks returns nil for an unknown id, not an error.
type ChunkStore interface {
	PutDocument(ctx context.Context, doc Document, chunks []Chunk) error
	GetDocument(ctx context.Context, docId string) (Document, bool)
	GetChunks(ctx context.Context, docId string) ([]Chunk, error)
	ListDocuments(ctx context.Context) ([]Document, error)
	DeleteDocument(ctx context.Context, docId string) (bool, error)
}
