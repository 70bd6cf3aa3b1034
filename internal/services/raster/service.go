// -----------------------------------------------------------------------
// Raster Service - renders single document pages into OCR-ready images
// Uses go-fitz (MuPDF) for Go-native page rasterization
// -----------------------------------------------------------------------

package raster

import (
	"context"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/common"
	"github.com/ternarybob/lumen/internal/interfaces"
)

// Service implements interfaces.Rasterizer using go-fitz
type Service struct {
	config  *common.RasterConfig
	logger  arbor.ILogger
	tempDir string
}

// Compile-time assertion
var _ interfaces.Rasterizer = (*Service)(nil)

// NewService creates a new raster service. Page images are written under a
// dedicated temp directory and removed when their artifact is released.
func NewService(config *common.RasterConfig, logger arbor.ILogger) (*Service, error) {
	tempDir := config.TempDir
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "lumen-raster")
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create raster temp directory: %w", err)
	}

	return &Service{
		config:  config,
		logger:  logger,
		tempDir: tempDir,
	}, nil
}

// PageCount returns the number of pages in the document at documentPath
func (s *Service) PageCount(documentPath string) (int, error) {
	doc, err := fitz.New(documentPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	count := doc.NumPage()
	if count == 0 {
		return 0, fmt.Errorf("document has no pages: %s", documentPath)
	}
	return count, nil
}

// RenderPage renders the 1-based page at the configured DPI and writes it to
// a temp JPEG. The caller must Release the returned artifact; a rendering
// failure is attributable to this page only and leaves no artifact behind.
func (s *Service) RenderPage(ctx context.Context, documentPath string, pageNumber int) (*interfaces.PageArtifact, error) {
	if pageNumber < 1 {
		return nil, fmt.Errorf("page number must be >= 1, got %d", pageNumber)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	doc, err := fitz.New(documentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	if pageNumber > doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", pageNumber, doc.NumPage())
	}

	// go-fitz pages are 0-based
	img, err := doc.ImageDPI(pageNumber-1, s.config.DPI)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", pageNumber, err)
	}

	outputPath := filepath.Join(s.tempDir, fmt.Sprintf("page_%d_%s.jpg", pageNumber, uuid.New().String()))
	outputFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create page image for page %d: %w", pageNumber, err)
	}

	err = jpeg.Encode(outputFile, img, &jpeg.Options{Quality: s.config.Quality})
	closeErr := outputFile.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(outputPath)
		return nil, fmt.Errorf("failed to encode page %d as JPEG: %w", pageNumber, err)
	}

	bounds := img.Bounds()
	s.logger.Debug().
		Int("page", pageNumber).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Str("path", outputPath).
		Msg("Rendered page image")

	release := func() error {
		if err := os.Remove(outputPath); err != nil && !os.IsNotExist(err) {
			// Cleanup failures are logged, not fatal: they do not corrupt
			// pipeline output.
			s.logger.Warn().Err(err).Str("path", outputPath).Msg("Failed to remove page image")
			return err
		}
		return nil
	}

	return interfaces.NewPageArtifact(pageNumber, outputPath, bounds.Dx(), bounds.Dy(), release), nil
}
