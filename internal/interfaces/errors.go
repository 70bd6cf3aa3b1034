package interfaces

import "errors"

var (
	// ErrRecordNotFound indicates no upload record exists for the given ID
	ErrRecordNotFound = errors.New("upload record not found")

	// ErrKeyNotFound indicates a key/value pair does not exist
	ErrKeyNotFound = errors.New("key not found")

	// ErrNoDefinition indicates the dictionary service has no definition for a term
	ErrNoDefinition = errors.New("no definition available")

	// ErrPageExtraction indicates a per-page OCR failure; the whole document's
	// extraction is aborted so downstream consumers never see a gap in page
	// numbering. Callers can present a retry affordance on this error.
	ErrPageExtraction = errors.New("page extraction failed")

	// ErrSummarizeFailed indicates the completion service call failed or
	// returned an unusable response.
	ErrSummarizeFailed = errors.New("failed to summarize")
)
