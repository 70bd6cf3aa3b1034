// -----------------------------------------------------------------------
// Upload Service - orchestrates document ingestion and the comprehension
// pipeline over persisted upload records
// -----------------------------------------------------------------------

package uploads

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/common"
	"github.com/ternarybob/lumen/internal/interfaces"
	"github.com/ternarybob/lumen/internal/models"
)

// TextExtractor produces the aggregated page-labeled text of a document.
type TextExtractor interface {
	ExtractText(ctx context.Context, documentPath string) (string, error)
}

// TermExtractor derives candidate medical terms from extracted text.
type TermExtractor interface {
	Extract(text string) ([]string, error)
}

// DefinitionResolver maps candidate terms to simplified explanations.
type DefinitionResolver interface {
	Resolve(ctx context.Context, terms []string) map[string]string
}

// Service owns the upload record lifecycle: ingestion creates the record,
// processing attaches extracted text and term explanations, and History
// exposes a subject's accumulated records to the summarizer. Each attach is
// an independent partial update; a failure in one stage leaves the
// artifacts of earlier stages in place.
type Service struct {
	storage     interfaces.UploadStorage
	objectStore interfaces.ObjectStore
	extractor   TextExtractor
	terms       TermExtractor
	definitions DefinitionResolver
	logger      arbor.ILogger
}

// NewService creates a new upload service
func NewService(
	storage interfaces.UploadStorage,
	objectStore interfaces.ObjectStore,
	extractor TextExtractor,
	terms TermExtractor,
	definitions DefinitionResolver,
	logger arbor.ILogger,
) *Service {
	return &Service{
		storage:     storage,
		objectStore: objectStore,
		extractor:   extractor,
		terms:       terms,
		definitions: definitions,
		logger:      logger,
	}
}

// Ingest uploads the document payload to the object store and persists a
// new upload record pointing at it.
func (s *Service) Ingest(ctx context.Context, uploadedBy, uploadedTo, fileName string, content io.Reader) (*models.UploadRecord, error) {
	fileURL, err := s.objectStore.Upload(ctx, fileName, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	record := &models.UploadRecord{
		ID:         common.NewUploadID(),
		UploadedBy: uploadedBy,
		UploadedTo: uploadedTo,
		FileName:   fileName,
		FileURL:    fileURL,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.storage.SaveRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist upload record: %w", err)
	}

	s.logger.Info().
		Str("record_id", record.ID).
		Str("uploaded_to", uploadedTo).
		Str("file_name", fileName).
		Msg("Document ingested")

	return record, nil
}

// Process runs the comprehension pipeline over the document at documentPath
// for an existing record: OCR text extraction, then term extraction and
// definition resolution. Extracted text is attached as soon as it exists so
// a later enrichment failure never loses it.
func (s *Service) Process(ctx context.Context, recordID, documentPath string) (*models.UploadRecord, error) {
	if _, err := s.storage.GetRecord(ctx, recordID); err != nil {
		return nil, err
	}

	text, err := s.extractor.ExtractText(ctx, documentPath)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed for record %s: %w", recordID, err)
	}
	if err := s.storage.AttachExtractedText(ctx, recordID, text); err != nil {
		return nil, fmt.Errorf("failed to attach extracted text: %w", err)
	}

	terms, err := s.terms.Extract(text)
	if err != nil {
		return nil, fmt.Errorf("term extraction failed for record %s: %w", recordID, err)
	}

	if len(terms) > 0 {
		explanations := s.definitions.Resolve(ctx, terms)
		if err := s.storage.AttachTermExplanations(ctx, recordID, explanations); err != nil {
			return nil, fmt.Errorf("failed to attach term explanations: %w", err)
		}
	}

	record, err := s.storage.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("record_id", recordID).
		Int("terms", len(terms)).
		Int("text_chars", len(text)).
		Msg("Document processed")

	return record, nil
}

// Get returns one upload record by ID.
func (s *Service) Get(ctx context.Context, recordID string) (*models.UploadRecord, error) {
	return s.storage.GetRecord(ctx, recordID)
}

// List returns a subject's upload records, oldest first.
func (s *Service) List(ctx context.Context, uploadedTo string) ([]*models.UploadRecord, error) {
	return s.storage.ListRecordsBySubject(ctx, uploadedTo)
}

// AttachSummary persists a generated summary onto the record as a
// convenience copy; summaries are always regenerated on request.
func (s *Service) AttachSummary(ctx context.Context, recordID, summaryText string) error {
	return s.storage.AttachSummary(ctx, recordID, summaryText)
}

// History builds the summarizer's input from a subject's records. Records
// without extracted text are skipped; ordering follows the record creation
// time.
func (s *Service) History(ctx context.Context, uploadedTo string) ([]models.MedicalHistoryRecord, error) {
	records, err := s.storage.ListRecordsBySubject(ctx, uploadedTo)
	if err != nil {
		return nil, err
	}

	history := make([]models.MedicalHistoryRecord, 0, len(records))
	for _, record := range records {
		if !record.HasExtractedText() {
			continue
		}
		history = append(history, models.MedicalHistoryRecord{
			ExtractedText: record.ExtractedText,
			Timestamp:     record.CreatedAt,
		})
	}
	return history, nil
}
