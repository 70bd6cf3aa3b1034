package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/interfaces"
	"github.com/ternarybob/lumen/internal/services/summary"
	"github.com/ternarybob/lumen/internal/services/uploads"
)

// SummaryHandler handles summarization HTTP requests
type SummaryHandler struct {
	uploads *uploads.Service
	summary *summary.Service
	logger  arbor.ILogger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(uploadService *uploads.Service, summaryService *summary.Service, logger arbor.ILogger) *SummaryHandler {
	return &SummaryHandler{
		uploads: uploadService,
		summary: summaryService,
		logger:  logger,
	}
}

// SummarizeDocumentHandler handles POST /api/documents/{id}/summary - generates
// a fresh summary of one document's extracted text.
func (h *SummaryHandler) SummarizeDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	id := strings.TrimSuffix(path, "/summary")
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
	if !record.HasExtractedText() {
		WriteError(w, http.StatusConflict, "Document has no extracted text yet")
		return
	}

	result, err := h.summary.SummarizeDocument(r.Context(), record.ExtractedText, record.CreatedAt)
	if err != nil {
		h.logger.Error().Err(err).Str("record_id", id).Msg("Document summarization failed")
		WriteError(w, http.StatusBadGateway, "Failed to summarize")
		return
	}

	// Convenience copy; every summary request regenerates
	if err := h.uploads.AttachSummary(r.Context(), id, result.Text); err != nil {
		h.logger.Warn().Err(err).Str("record_id", id).Msg("Failed to persist summary copy")
	}

	WriteJSON(w, http.StatusOK, result)
}

type historySummaryRequest struct {
	UploadedTo string `json:"uploaded_to"`
}

// SummarizeHistoryHandler handles POST /api/summary - generates a chronological
// summary across all of a subject's processed documents.
func (h *SummaryHandler) SummarizeHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req historySummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UploadedTo == "" {
		WriteError(w, http.StatusBadRequest, "Missing uploaded_to")
		return
	}

	history, err := h.uploads.History(r.Context(), req.UploadedTo)
	if err != nil {
		h.logger.Error().Err(err).Str("uploaded_to", req.UploadedTo).Msg("Failed to load history")
		WriteError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}
	if len(history) == 0 {
		WriteError(w, http.StatusNotFound, "No processed documents for subject")
		return
	}

	result, err := h.summary.Summarize(r.Context(), history)
	if err != nil {
		h.logger.Error().Err(err).Str("uploaded_to", req.UploadedTo).Msg("History summarization failed")
		WriteError(w, http.StatusBadGateway, "Failed to summarize")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"uploaded_to": req.UploadedTo,
		"records":     len(history),
		"summary":     result,
	})
}
