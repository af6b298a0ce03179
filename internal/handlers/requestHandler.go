package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/akolanti/DocChatAPI/internal/adapter"
	"github.com/akolanti/DocChatAPI/internal/adapter/utils"
	"github.com/akolanti/DocChatAPI/internal/api"
	"github.com/akolanti/DocChatAPI/internal/config"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

type newJobData struct {
	id             string
	traceId        string
	documentName   string
	documentSource string
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Reports that the service is up.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{
		Status:  "healthy",
		Service: "doc-chat-api",
		Version: "1.0.0",
	})
}

// UploadDocumentHandler godoc
// @Summary      Upload a document for ingestion
// @Description  Receives a file via multipart/form-data, saves it under a generated name, and queues an ingestion job. Track progress through the returned status URL.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "The PDF, DOCX, TXT or MD file to upload"
// @Success      202  {object}  api.InitJobResponse  "Accepted - returns job id and status URL"
// @Failure      400  {object}  api.ErrorResponse    "Unsupported file type or missing file"
// @Failure      413  {object}  api.ErrorResponse    "File exceeds the size cap"
// @Failure      500  {object}  api.ErrorResponse    "Storage or write error"
// @Router       /api/v1/documents/upload [post]
func UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		targetDir, errString := getUploadDirectory()
		if errString != "" {
			logRH.Error("Couldn't get upload directory :", "err", errString)
			writeDetailResponse(w, http.StatusInternalServerError, errString)
			return
		}

		if err := r.ParseMultipartForm(config.MultipartMemLimit); err != nil {
			writeDetailResponse(w, http.StatusBadRequest, "Could not parse upload")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("file")
		if err != nil {
			writeDetailResponse(w, http.StatusBadRequest, "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		ext, ok := validFileExtension(fileMetadata.Filename)
		if !ok {
			logRH.Warn("Rejected upload", "filename", fileMetadata.Filename, "ext", ext)
			writeDetailResponse(w, http.StatusBadRequest,
				fmt.Sprintf("Unsupported file type. Allowed: %s", strings.Join(allowedExtensions, ", ")))
			return
		}

		if fileMetadata.Size > config.MaxUploadSizeBytes {
			writeDetailResponse(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File too large. Maximum size: %d bytes", config.MaxUploadSizeBytes))
			return
		}

		//stored under a fresh uuid, the original name only survives as metadata
		filename := utils.GetNewUUID() + ext
		uploadPath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(uploadPath)
		if err != nil {
			writeDetailResponse(w, http.StatusInternalServerError, "Storage error")
			return
		}
		defer destinationFileWriter.Close()

		if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
			writeDetailResponse(w, http.StatusInternalServerError, "Write error")
			return
		}

		newJob := newJobData{
			id:             utils.GetNewUUID(),
			traceId:        r.Context().Value(config.TRACE_ID_KEY).(string),
			documentName:   fileMetadata.Filename,
			documentSource: uploadPath,
		}
		CreateNewJob(newJob)
		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of an ingestion job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID "
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		//use chi get the url id
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// AskQuestionHandler godoc
// @Summary      Ask a question about uploaded documents
// @Description  Scores the question against stored chunks and answers from the best matches, through the model when one is configured.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.QuestionRequest  true  "Question and optional document id filter"
// @Success      200      {object}  api.ChatResponse
// @Failure      400      {object}  api.ErrorResponse  "Empty question or invalid JSON"
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/v1/chat/ask [post]
func AskQuestionHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		var requestData api.QuestionRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Ask handler reader :", err)
			}
		}(r.Body)

		//an empty body reads as an empty question, not a decode failure
		if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil && !errors.Is(err, io.EOF) {
			logRH.Warn("Bad Ask Request: ", "error:", err)
			writeDetailResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}
		if strings.TrimSpace(requestData.Question) == "" {
			writeDetailResponse(w, http.StatusBadRequest, "Question cannot be empty")
			return
		}

		answer, err := retrievalService.AnswerQuestion(r.Context(), requestData.Question, requestData.DocumentIds)
		if err != nil {
			logRH.Error("Error processing question", "error", err)
			writeDetailResponse(w, http.StatusInternalServerError, "Error processing your question. Please try again.")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(answer))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// SearchDocumentsHandler godoc
// @Summary      Search document chunks
// @Description  Returns the scored chunks a question would be answered from, without generating an answer.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.QuestionRequest  true  "Search query and optional document id filter"
// @Success      200      {array}   api.SearchResult
// @Failure      400      {object}  api.ErrorResponse  "Empty query or invalid JSON"
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/v1/chat/search [post]
func SearchDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		var requestData api.QuestionRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Search handler reader :", err)
			}
		}(r.Body)

		if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil && !errors.Is(err, io.EOF) {
			logRH.Warn("Bad Search Request: ", "error:", err)
			writeDetailResponse(w, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}
		if strings.TrimSpace(requestData.Question) == "" {
			writeDetailResponse(w, http.StatusBadRequest, "Search query cannot be empty")
			return
		}

		results, err := retrievalService.SearchChunks(r.Context(), requestData.Question, requestData.DocumentIds)
		if err != nil {
			logRH.Error("Error searching documents", "error", err)
			writeDetailResponse(w, http.StatusInternalServerError, "Error searching documents. Please try again.")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToSearchResults(results))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetChatStatusHandler godoc
// @Summary      Chat service status
// @Description  Reports whether documents are loaded and a synthesis backend is configured.
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  api.ChatStatusResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/v1/chat/status [get]
func GetChatStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		status, err := retrievalService.Status(r.Context())
		if err != nil {
			logRH.Error("Error getting chat status", "error", err)
			writeDetailResponse(w, http.StatusInternalServerError, "Error getting chat status")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToChatStatusResponse(status))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}
