package docModel

import "errors"

// ErrDocumentNotFound indicates a lookup against an unknown document id.
var ErrDocumentNotFound = errors.New("document not found")

// ErrUnsupportedFormat indicates a file extension no extractor handles.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrExtractionFailed indicates the text extractor could not read the file.
// Ingestion is all-or-nothing, so nothing is stored when this is returned.
var ErrExtractionFailed = errors.New("text extraction failed")

// ErrBadChunkConfig indicates an invalid chunk size and overlap combination
// (overlap >= size would stall the chunker, size <= 0 is meaningless).
var ErrBadChunkConfig = errors.New("invalid chunking configuration")

// ErrSynthesisUnavailable indicates the answer generation provider is not
// configured or failed. Callers substitute the deterministic fallback answer
// instead of surfacing this to the end user.
var ErrSynthesisUnavailable = errors.New("answer synthesis unavailable")
