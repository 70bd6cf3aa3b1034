package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/common"
	"github.com/ternarybob/lumen/internal/interfaces"
)

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	storage interfaces.StorageManager
	logger  arbor.ILogger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage interfaces.StorageManager, logger arbor.ILogger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		logger:  logger,
	}
}

// HealthHandler handles GET /api/health
func (h *HealthHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	count, err := h.storage.UploadStorage().CountRecords(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Health check storage probe failed")
		WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unhealthy",
			"error":  "storage unavailable",
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"version":   common.Version,
		"documents": count,
	})
}
