package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
)

func getDocType(docPath string) docModel.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return docModel.PDF
	case ".docx":
		return docModel.DOCX
	case ".txt":
		return docModel.TXT
	case ".md":
		return docModel.MD
	default:
		return docModel.ERR
	}
}

func extractText(path string, contentType docModel.DocType) (string, error) {
	switch contentType {
	case docModel.PDF:
		return extractPDF(path)
	case docModel.DOCX, docModel.TXT, docModel.MD:
		return extractPlainText(path)

	default:
		return "", fmt.Errorf("%w: %s", docModel.ErrUnsupportedFormat, contentType)
	}
}

// contentPreview keeps the head of the extracted text on the document record
func contentPreview(text string) string {
	if len(text) > config.DocumentPreviewLength {
		return text[:config.DocumentPreviewLength] + "..."
	}
	return text
}

func buildDocumentRecord(id string, path string, originalFilename string, text string, chunkCount int) (docModel.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return docModel.Document{}, fmt.Errorf("stat upload: %w", err)
	}

	return docModel.Document{
		Id:               id,
		Filename:         filepath.Base(path),
		OriginalFilename: originalFilename,
		FileType:         strings.ToLower(filepath.Ext(path)),
		FileSize:         info.Size(),
		Status:           docModel.StatusProcessed,
		ChunkCount:       chunkCount,
		CreatedAt:        info.ModTime(),
		ProcessedAt:      time.Now(),
		ContentPreview:   contentPreview(text),
	}, nil
}
