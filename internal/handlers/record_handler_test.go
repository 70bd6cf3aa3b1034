package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/interfaces"
	"github.com/ternarybob/lumen/internal/models"
	"github.com/ternarybob/lumen/internal/services/uploads"
)

// memoryStorage is a minimal in-memory UploadStorage for handler tests.
type memoryStorage struct {
	records map[string]*models.UploadRecord
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{records: make(map[string]*models.UploadRecord)}
}

func (m *memoryStorage) SaveRecord(_ context.Context, record *models.UploadRecord) error {
	clone := *record
	m.records[record.ID] = &clone
	return nil
}

func (m *memoryStorage) GetRecord(_ context.Context, id string) (*models.UploadRecord, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, interfaces.ErrRecordNotFound
	}
	clone := *record
	return &clone, nil
}

func (m *memoryStorage) ListRecordsBySubject(_ context.Context, uploadedTo string) ([]*models.UploadRecord, error) {
	var matches []*models.UploadRecord
	for _, record := range m.records {
		if record.UploadedTo == uploadedTo {
			clone := *record
			matches = append(matches, &clone)
		}
	}
	return matches, nil
}

func (m *memoryStorage) AttachExtractedText(_ context.Context, id, text string) error {
	record, ok := m.records[id]
	if !ok {
		return interfaces.ErrRecordNotFound
	}
	record.ExtractedText = text
	return nil
}

func (m *memoryStorage) AttachTermExplanations(_ context.Context, id string, explanations map[string]string) error {
	record, ok := m.records[id]
	if !ok {
		return interfaces.ErrRecordNotFound
	}
	record.TermExplanations = explanations
	return nil
}

func (m *memoryStorage) AttachSummary(_ context.Context, id, summary string) error {
	record, ok := m.records[id]
	if !ok {
		return interfaces.ErrRecordNotFound
	}
	record.Summary = summary
	return nil
}

func (m *memoryStorage) DeleteRecord(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *memoryStorage) CountRecords(context.Context) (int, error) {
	return len(m.records), nil
}

func newRecordHandler(storage *memoryStorage) *RecordHandler {
	service := uploads.NewService(storage, nil, nil, nil, nil, arbor.NewLogger())
	return NewRecordHandler(service, arbor.NewLogger())
}

func TestGetDocumentHandler(t *testing.T) {
	storage := newMemoryStorage()
	storage.SaveRecord(context.Background(), &models.UploadRecord{
		ID:         "upl_123",
		UploadedTo: "patient-7",
		FileName:   "labs.pdf",
		CreatedAt:  time.Now().UTC(),
	})
	handler := newRecordHandler(storage)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/upl_123", nil)
	rec := httptest.NewRecorder()
	handler.GetDocumentHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var record models.UploadRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&record))
	assert.Equal(t, "upl_123", record.ID)
	assert.Equal(t, "labs.pdf", record.FileName)
}

func TestGetDocumentHandlerNotFound(t *testing.T) {
	handler := newRecordHandler(newMemoryStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/documents/upl_missing", nil)
	rec := httptest.NewRecorder()
	handler.GetDocumentHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDocumentHandlerRejectsWrongMethod(t *testing.T) {
	handler := newRecordHandler(newMemoryStorage())

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/upl_123", nil)
	rec := httptest.NewRecorder()
	handler.GetDocumentHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListDocumentsHandler(t *testing.T) {
	storage := newMemoryStorage()
	storage.SaveRecord(context.Background(), &models.UploadRecord{ID: "upl_a", UploadedTo: "patient-7"})
	storage.SaveRecord(context.Background(), &models.UploadRecord{ID: "upl_b", UploadedTo: "patient-9"})
	handler := newRecordHandler(storage)

	req := httptest.NewRequest(http.MethodGet, "/api/documents?uploaded_to=patient-7", nil)
	rec := httptest.NewRecorder()
	handler.ListDocumentsHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Count     int                   `json:"count"`
		Documents []models.UploadRecord `json:"documents"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
	require.Len(t, response.Documents, 1)
	assert.Equal(t, "upl_a", response.Documents[0].ID)
}

func TestListDocumentsHandlerMissingSubject(t *testing.T) {
	handler := newRecordHandler(newMemoryStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()
	handler.ListDocumentsHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
