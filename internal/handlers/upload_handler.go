package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/interfaces"
	"github.com/ternarybob/lumen/internal/services/uploads"
)

// maxUploadBytes bounds the in-memory portion of multipart parsing.
const maxUploadBytes = 64 << 20

// UploadHandler handles document ingestion HTTP requests
type UploadHandler struct {
	uploads *uploads.Service
	logger  arbor.ILogger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *uploads.Service, logger arbor.ILogger) *UploadHandler {
	return &UploadHandler{
		uploads: uploadService,
		logger:  logger,
	}
}

// CreateDocumentHandler handles POST /api/documents - ingests a document and
// runs the comprehension pipeline over it. Expects multipart form fields
// "uploaded_by", "uploaded_to", and "file".
func (h *UploadHandler) CreateDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	uploadedBy := r.FormValue("uploaded_by")
	uploadedTo := r.FormValue("uploaded_to")
	if uploadedBy == "" || uploadedTo == "" {
		WriteError(w, http.StatusBadRequest, "Missing uploaded_by or uploaded_to")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing document file")
		return
	}
	defer file.Close()

	// The payload is read twice: once for object storage, once for local
	// rasterization, so it is buffered up front.
	var payload bytes.Buffer
	if _, err := io.Copy(&payload, file); err != nil {
		h.logger.Error().Err(err).Msg("Failed to read upload payload")
		WriteError(w, http.StatusInternalServerError, "Failed to read document")
		return
	}

	record, err := h.uploads.Ingest(r.Context(), uploadedBy, uploadedTo, header.Filename,
		bytes.NewReader(payload.Bytes()))
	if err != nil {
		h.logger.Error().Err(err).Str("file_name", header.Filename).Msg("Document ingestion failed")
		WriteError(w, http.StatusBadGateway, "Failed to store document")
		return
	}

	documentPath, err := h.writeTempDocument(record.ID, header.Filename, payload.Bytes())
	if err != nil {
		h.logger.Error().Err(err).Str("record_id", record.ID).Msg("Failed to stage document for processing")
		WriteError(w, http.StatusInternalServerError, "Failed to stage document")
		return
	}
	defer os.Remove(documentPath)

	processed, err := h.uploads.Process(r.Context(), record.ID, documentPath)
	if err != nil {
		if errors.Is(err, interfaces.ErrPageExtraction) {
			h.logger.Warn().Err(err).Str("record_id", record.ID).Msg("Document text extraction failed")
			// The record exists with its file URL; extraction can be retried
			WriteJSON(w, http.StatusAccepted, map[string]interface{}{
				"status": "partial",
				"record": record,
				"error":  "text extraction failed",
			})
			return
		}
		h.logger.Error().Err(err).Str("record_id", record.ID).Msg("Document processing failed")
		WriteError(w, http.StatusInternalServerError, "Failed to process document")
		return
	}

	WriteJSON(w, http.StatusCreated, processed)
}

// writeTempDocument stages the uploaded payload on disk for the rasterizer.
func (h *UploadHandler) writeTempDocument(recordID, fileName string, payload []byte) (string, error) {
	path := filepath.Join(os.TempDir(), recordID+"_"+filepath.Base(fileName))
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
