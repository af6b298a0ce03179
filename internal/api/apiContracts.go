package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

// IngestResult is filled in once the ingestion pipeline has produced a
// document, the id is what the other endpoints take
type IngestResult struct {
	DocumentId string `json:"document_id"`
	ChunkCount int    `json:"chunk_count" example:"14"`
}

type Result struct {
	Status       string        `json:"status"`
	IngestResult *IngestResult `json:"ingest_result,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type ChatResponse struct {
	Answer     string           `json:"answer"`
	Sources    []SourceResponse `json:"sources"`
	Confidence float64          `json:"confidence" example:"0.67"`
	ChunksUsed int              `json:"chunks_used" example:"2"`
}

type SourceResponse struct {
	Document       string `json:"document" example:"lecture_notes.pdf"`
	Page           string `json:"page" example:"N/A"`
	ChunkId        string `json:"chunk_id"`
	RelevanceScore int    `json:"relevance_score" example:"12"`
	Preview        string `json:"preview"`
}

// SearchResult is one row of the bare array the search endpoint returns
type SearchResult struct {
	ChunkId    string   `json:"chunk_id"`
	DocumentId string   `json:"document_id"`
	Content    string   `json:"content"`
	Score      int      `json:"score" example:"8"`
	Keywords   []string `json:"keywords"`
}

type ChatStatusResponse struct {
	Status             string            `json:"status" example:"ready"`
	SynthesisAvailable bool              `json:"synthesis_available"`
	AvailableDocuments int               `json:"available_documents" example:"2"`
	Documents          []DocumentSummary `json:"documents"`
}

type DocumentSummary struct {
	Id       string `json:"id"`
	Filename string `json:"filename" example:"lecture_notes.pdf"`
	Chunks   int    `json:"chunks" example:"14"`
}

type DocumentResponse struct {
	Id               string    `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename" example:"lecture_notes.pdf"`
	FileType         string    `json:"file_type" example:".pdf"`
	FileSize         int64     `json:"file_size" example:"482133"`
	Status           string    `json:"status" example:"processed"`
	ChunkCount       int       `json:"chunk_count" example:"14"`
	CreatedAt        time.Time `json:"created_at"`
	ProcessedAt      time.Time `json:"processed_at"`
}

type ChunkResponse struct {
	Id         string   `json:"id"`
	DocumentId string   `json:"document_id"`
	Content    string   `json:"content"`
	ChunkIndex int      `json:"chunk_index"`
	Keywords   []string `json:"keywords"`
	StartPos   int      `json:"start_pos"`
	EndPos     int      `json:"end_pos"`
	Score      *int     `json:"score"`
}

type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service" example:"doc-chat-api"`
	Version string `json:"version" example:"1.0.0"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Document deleted successfully"`
}

// ErrorResponse mirrors the detail shape clients of the v1 API expect
type ErrorResponse struct {
	Detail string `json:"detail" example:"Document not found"`
}

// requests---------------------

// QuestionRequest serves both ask and search, search just skips the answer
type QuestionRequest struct {
	Question    string   `json:"question" validate:"required"`
	DocumentIds []string `json:"document_ids,omitempty"`
}
