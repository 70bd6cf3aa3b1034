package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Documents
	mux.HandleFunc("/api/documents", s.handleDocumentsRoute)   // GET (list), POST (ingest + process)
	mux.HandleFunc("/api/documents/", s.handleDocumentRoutes)  // GET /{id}, POST /{id}/summary

	// API routes - Summaries
	mux.HandleFunc("/api/summary", s.app.SummaryHandler.SummarizeHistoryHandler) // POST - subject history summary

	// API routes - Health
	mux.HandleFunc("/api/health", s.app.HealthHandler.HealthHandler)

	return mux
}

// handleDocumentsRoute dispatches /api/documents by method
func (s *Server) handleDocumentsRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.app.UploadHandler.CreateDocumentHandler(w, r)
	case http.MethodGet:
		s.app.RecordHandler.ListDocumentsHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleDocumentRoutes dispatches /api/documents/{id} and /api/documents/{id}/summary
func (s *Server) handleDocumentRoutes(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/summary") {
		s.app.SummaryHandler.SummarizeDocumentHandler(w, r)
		return
	}
	s.app.RecordHandler.GetDocumentHandler(w, r)
}
