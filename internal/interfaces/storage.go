package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/lumen/internal/models"
)

// KeyValuePair represents a stored key/value entry with metadata
type KeyValuePair struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// KeyValueStorage defines key/value persistence (API keys, settings)
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value, description string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]KeyValuePair, error)
}

// UploadStorage persists upload records keyed by opaque ID. The Attach*
// methods are independent partial updates: each mutates exactly one derived
// field and never requires the others to be present.
type UploadStorage interface {
	SaveRecord(ctx context.Context, record *models.UploadRecord) error
	GetRecord(ctx context.Context, id string) (*models.UploadRecord, error)
	ListRecordsBySubject(ctx context.Context, uploadedTo string) ([]*models.UploadRecord, error)
	AttachExtractedText(ctx context.Context, id, text string) error
	AttachTermExplanations(ctx context.Context, id string, explanations map[string]string) error
	AttachSummary(ctx context.Context, id, summary string) error
	DeleteRecord(ctx context.Context, id string) error
	CountRecords(ctx context.Context) (int, error)
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	UploadStorage() UploadStorage
	KeyValueStorage() KeyValueStorage
	Close() error
}
