package interfaces

import "context"

// PageArtifact is a rendered page image on ephemeral storage. Release removes
// the artifact; it must be called on every exit path of the per-page OCR call
// so temporary files never outlive a single page's processing.
type PageArtifact struct {
	PageNumber int
	Path       string
	Width      int
	Height     int

	release func() error
}

// NewPageArtifact constructs an artifact with its cleanup function
func NewPageArtifact(pageNumber int, path string, width, height int, release func() error) *PageArtifact {
	return &PageArtifact{
		PageNumber: pageNumber,
		Path:       path,
		Width:      width,
		Height:     height,
		release:    release,
	}
}

// Release deletes the temporary image artifact. Safe to call more than once.
func (a *PageArtifact) Release() error {
	if a.release == nil {
		return nil
	}
	fn := a.release
	a.release = nil
	return fn()
}

// Rasterizer renders single pages of a paginated document into raster images
// suitable for OCR.
type Rasterizer interface {
	// PageCount returns the number of pages in the document at path
	PageCount(documentPath string) (int, error)

	// RenderPage renders the 1-based page at a fixed magnification and writes
	// it to ephemeral storage. The caller owns the returned artifact and must
	// Release it.
	RenderPage(ctx context.Context, documentPath string, pageNumber int) (*PageArtifact, error)
}
