package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/lumen/internal/interfaces"
	"github.com/ternarybob/lumen/internal/models"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	tmpDir := t.TempDir()

	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store}
}

func newTestStorage(t *testing.T) interfaces.UploadStorage {
	t.Helper()
	return NewUploadStorage(newTestDB(t), arbor.NewLogger())
}

func TestUploadRecordLifecycle(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	record := &models.UploadRecord{
		ID:         "upl_test-1",
		UploadedBy: "dr-lee",
		UploadedTo: "patient-9",
		FileName:   "lab-results.pdf",
		FileURL:    "https://store.example/lab-results.pdf",
	}
	require.NoError(t, storage.SaveRecord(ctx, record))

	got, err := storage.GetRecord(ctx, "upl_test-1")
	require.NoError(t, err)
	assert.Equal(t, "dr-lee", got.UploadedBy)
	assert.Equal(t, "patient-9", got.UploadedTo)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Empty(t, got.ExtractedText)
	assert.Nil(t, got.TermExplanations)
}

func TestGetRecordNotFound(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.GetRecord(context.Background(), "upl_missing")
	assert.True(t, errors.Is(err, interfaces.ErrRecordNotFound))
}

func TestAttachOperationsAreIndependent(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.SaveRecord(ctx, &models.UploadRecord{
		ID:         "upl_test-2",
		UploadedBy: "dr-lee",
		UploadedTo: "patient-9",
		FileName:   "scan.pdf",
		FileURL:    "https://store.example/scan.pdf",
	}))

	// Attach explanations before extracted text; neither update may clobber
	// the other.
	explanations := map[string]string{"hypertension": "high blood pressure"}
	require.NoError(t, storage.AttachTermExplanations(ctx, "upl_test-2", explanations))
	require.NoError(t, storage.AttachExtractedText(ctx, "upl_test-2", "Page 1:\nBP 140/90"))
	require.NoError(t, storage.AttachSummary(ctx, "upl_test-2", "- **BP 140/90** is elevated"))

	got, err := storage.GetRecord(ctx, "upl_test-2")
	require.NoError(t, err)
	assert.Equal(t, "Page 1:\nBP 140/90", got.ExtractedText)
	assert.Equal(t, explanations, got.TermExplanations)
	assert.Equal(t, "- **BP 140/90** is elevated", got.Summary)
}

func TestAttachToMissingRecord(t *testing.T) {
	storage := newTestStorage(t)

	err := storage.AttachExtractedText(context.Background(), "upl_missing", "text")
	assert.True(t, errors.Is(err, interfaces.ErrRecordNotFound))
}

func TestListRecordsBySubjectOrdering(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"upl_c", "upl_a", "upl_b"} {
		require.NoError(t, storage.SaveRecord(ctx, &models.UploadRecord{
			ID:         id,
			UploadedBy: "dr-lee",
			UploadedTo: "patient-9",
			FileName:   id + ".pdf",
			FileURL:    "https://store.example/" + id,
			CreatedAt:  base.Add(time.Duration(2-i) * time.Hour),
		}))
	}
	require.NoError(t, storage.SaveRecord(ctx, &models.UploadRecord{
		ID:         "upl_other",
		UploadedBy: "dr-lee",
		UploadedTo: "patient-4",
		FileName:   "other.pdf",
		FileURL:    "https://store.example/other",
	}))

	records, err := storage.ListRecordsBySubject(ctx, "patient-9")
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Oldest first regardless of insertion order
	assert.Equal(t, "upl_b", records[0].ID)
	assert.Equal(t, "upl_a", records[1].ID)
	assert.Equal(t, "upl_c", records[2].ID)
}
