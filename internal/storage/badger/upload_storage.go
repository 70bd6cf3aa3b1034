package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/lumen/internal/interfaces"
	"github.com/ternarybob/lumen/internal/models"
)

// UploadStorage implements the UploadStorage interface for Badger
type UploadStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewUploadStorage creates a new UploadStorage instance
func NewUploadStorage(db *BadgerDB, logger arbor.ILogger) interfaces.UploadStorage {
	return &UploadStorage{
		db:     db,
		logger: logger,
	}
}

func (s *UploadStorage) SaveRecord(ctx context.Context, record *models.UploadRecord) error {
	if record.ID == "" {
		return fmt.Errorf("upload record ID is required")
	}

	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	if err := s.db.Store().Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to save upload record: %w", err)
	}
	return nil
}

func (s *UploadStorage) GetRecord(ctx context.Context, id string) (*models.UploadRecord, error) {
	var record models.UploadRecord
	if err := s.db.Store().Get(id, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get upload record: %w", err)
	}
	return &record, nil
}

func (s *UploadStorage) ListRecordsBySubject(ctx context.Context, uploadedTo string) ([]*models.UploadRecord, error) {
	var records []models.UploadRecord
	if err := s.db.Store().Find(&records, badgerhold.Where("UploadedTo").Eq(uploadedTo)); err != nil {
		return nil, fmt.Errorf("failed to list upload records: %w", err)
	}

	// Oldest first so callers see subject history chronologically
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	result := make([]*models.UploadRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

// AttachExtractedText writes the OCR result onto a record. This is a partial
// update: other derived fields are left untouched.
func (s *UploadStorage) AttachExtractedText(ctx context.Context, id, text string) error {
	return s.mutateRecord(ctx, id, func(record *models.UploadRecord) {
		record.ExtractedText = text
	})
}

// AttachTermExplanations writes the term->definition map onto a record
func (s *UploadStorage) AttachTermExplanations(ctx context.Context, id string, explanations map[string]string) error {
	return s.mutateRecord(ctx, id, func(record *models.UploadRecord) {
		record.TermExplanations = explanations
	})
}

// AttachSummary persists a generated summary onto a record
func (s *UploadStorage) AttachSummary(ctx context.Context, id, summary string) error {
	return s.mutateRecord(ctx, id, func(record *models.UploadRecord) {
		record.Summary = summary
	})
}

func (s *UploadStorage) DeleteRecord(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.UploadRecord{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete upload record: %w", err)
	}
	return nil
}

func (s *UploadStorage) CountRecords(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.UploadRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count upload records: %w", err)
	}
	return int(count), nil
}

func (s *UploadStorage) mutateRecord(ctx context.Context, id string, mutate func(*models.UploadRecord)) error {
	record, err := s.GetRecord(ctx, id)
	if err != nil {
		return err
	}

	mutate(record)
	record.UpdatedAt = time.Now().UTC()

	if err := s.db.Store().Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to update upload record: %w", err)
	}
	return nil
}
