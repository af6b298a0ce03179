package handlers

import (
	"net/http"
	"strconv"

	"github.com/akolanti/DocChatAPI/internal/adapter"
	"github.com/akolanti/DocChatAPI/internal/adapter/utils"
	"github.com/akolanti/DocChatAPI/internal/api"
	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/internal/domain/docModel"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

var logDH *logger_i.Logger

// ListDocumentsHandler godoc
// @Summary      List uploaded documents
// @Description  Returns all ingested documents in upload order, paginated with skip and limit.
// @Tags         Documents
// @Produce      json
// @Param        skip   query     int  false  "Number of documents to skip"  default(0)
// @Param        limit  query     int  false  "Maximum documents to return"  default(100)
// @Success      200    {array}   api.DocumentResponse
// @Failure      500    {object}  api.ErrorResponse
// @Router       /api/v1/documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		docs, err := documentStore.ListDocuments(r.Context())
		if err != nil {
			logDH.Error("Error fetching documents", "error", err)
			writeDetailResponse(w, http.StatusInternalServerError, "Error fetching documents")
			return
		}

		skip := queryInt(r, "skip", 0)
		limit := queryInt(r, "limit", config.DocumentListLimit)
		writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponses(paginate(docs, skip, limit)))
		return
	}
	logDH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetDocumentHandler godoc
// @Summary      Get a document
// @Description  Returns the record of a single ingested document.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentResponse
// @Failure      404  {object}  api.ErrorResponse  "Document not found"
// @Router       /api/v1/documents/{id} [get]
func GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		docId := utils.GetChiURLParam(r, "id")
		doc, found := documentStore.GetDocument(r.Context(), docId)
		if !found {
			writeDetailResponse(w, http.StatusNotFound, "Document not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(doc))
		return
	}
	logDH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetDocumentChunksHandler godoc
// @Summary      Get a document's chunks
// @Description  Returns every chunk of a document in index order. Unknown documents return an empty list.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {array}   api.ChunkResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/v1/documents/{id}/chunks [get]
func GetDocumentChunksHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		docId := utils.GetChiURLParam(r, "id")
		chunks, err := documentStore.GetChunks(r.Context(), docId)
		if err != nil {
			logDH.Error("Error fetching chunks", "doc Id", docId, "error", err)
			writeDetailResponse(w, http.StatusInternalServerError, "Error fetching document chunks")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToChunkResponses(chunks))
		return
	}
	logDH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// DeleteDocumentHandler godoc
// @Summary      Delete a document
// @Description  Removes a document and all of its chunks.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse  "Document not found"
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/v1/documents/{id} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		docId := utils.GetChiURLParam(r, "id")
		removed, err := documentStore.DeleteDocument(r.Context(), docId)
		if err != nil {
			logDH.Error("Error deleting document", "doc Id", docId, "error", err)
			writeDetailResponse(w, http.StatusInternalServerError, "Error deleting document")
			return
		}
		if !removed {
			writeDetailResponse(w, http.StatusNotFound, "Document not found")
			return
		}

		logDH.Info("Deleted document", "doc Id", docId)
		writeJsonResponse(w, http.StatusOK, api.MessageResponse{Message: "Document deleted successfully"})
		return
	}
	logDH.Warn("Invalid Context by request ", r.RemoteAddr)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func paginate(docs []docModel.Document, skip int, limit int) []docModel.Document {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if skip >= len(docs) {
		return nil
	}
	end := skip + limit
	if end > len(docs) {
		end = len(docs)
	}
	return docs[skip:end]
}
