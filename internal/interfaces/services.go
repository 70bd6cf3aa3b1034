package interfaces

import (
	"context"
	"io"
)

// OCRClient submits a single raster image to the OCR service and returns the
// recognized text. An image with no recognizable text yields an empty string,
// not an error.
type OCRClient interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// DictionaryClient looks up a single lowercase term and returns the first
// available definition. Returns ErrNoDefinition when the service has no entry
// for the term.
type DictionaryClient interface {
	Lookup(ctx context.Context, term string) (string, error)
}

// CompletionService submits a prompt to a generative text-completion service
// and returns the raw textual response. Completions are never cached: prompts
// are a function of mutable document sets.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
	HealthCheck(ctx context.Context) error
	Close() error
}

// ObjectStore uploads a binary blob and returns a stable retrieval URL.
// The URL is treated as opaque by the pipeline.
type ObjectStore interface {
	Upload(ctx context.Context, fileName string, content io.Reader) (string, error)
}
