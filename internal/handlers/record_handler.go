package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/interfaces"
	"github.com/ternarybob/lumen/internal/services/uploads"
)

// RecordHandler handles upload record retrieval HTTP requests
type RecordHandler struct {
	uploads *uploads.Service
	logger  arbor.ILogger
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(uploadService *uploads.Service, logger arbor.ILogger) *RecordHandler {
	return &RecordHandler{
		uploads: uploadService,
		logger:  logger,
	}
}

// GetDocumentHandler handles GET /api/documents/{id}
func (h *RecordHandler) GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	record, err := h.uploads.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrRecordNotFound) {
			WriteError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.logger.Error().Err(err).Str("record_id", id).Msg("Failed to load upload record")
		WriteError(w, http.StatusInternalServerError, "Failed to load document")
		return
	}

	WriteJSON(w, http.StatusOK, record)
}

// ListDocumentsHandler handles GET /api/documents?uploaded_to={subject}
func (h *RecordHandler) ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	uploadedTo := r.URL.Query().Get("uploaded_to")
	if uploadedTo == "" {
		WriteError(w, http.StatusBadRequest, "Missing uploaded_to parameter")
		return
	}

	records, err := h.uploads.List(r.Context(), uploadedTo)
	if err != nil {
		h.logger.Error().Err(err).Str("uploaded_to", uploadedTo).Msg("Failed to list upload records")
		WriteError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(records),
		"documents": records,
	})
}
