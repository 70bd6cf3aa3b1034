package models

import (
	"time"
)

// UploadRecord represents one ingested medical document and its derived
// artifacts. The record is created immediately after the object-storage
// upload succeeds; each pipeline stage attaches its artifact as an
// independent partial update. Records are never deleted by the pipeline
// itself.
type UploadRecord struct {
	ID               string            `json:"id"` // upl_{uuid}
	UploadedBy       string            `json:"uploaded_by"`
	UploadedTo       string            `json:"uploaded_to"` // Subject the document concerns; may equal uploader
	FileName         string            `json:"file_name"`
	FileURL          string            `json:"file_url"` // Object-storage retrieval URL
	CreatedAt        time.Time         `json:"created_at"`
	ExtractedText    string            `json:"extracted_text,omitempty"`
	TermExplanations map[string]string `json:"term_explanations,omitempty"`
	Summary          string            `json:"summary,omitempty"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// HasExtractedText reports whether OCR extraction has completed for this record
func (r *UploadRecord) HasExtractedText() bool {
	return r.ExtractedText != ""
}

// PageText is the transient per-page OCR result. PageNumber values are
// contiguous starting at 1 and match physical page order; aggregation must
// preserve this order regardless of OCR call completion order.
type PageText struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
}

// MedicalHistoryRecord is a read-only input to the summarizer, sourced from
// upload records belonging to the same subject. Records are sorted ascending
// by Timestamp before prompt construction so summaries read chronologically.
type MedicalHistoryRecord struct {
	ExtractedText string    `json:"extracted_text"`
	Timestamp     time.Time `json:"timestamp"`
}
