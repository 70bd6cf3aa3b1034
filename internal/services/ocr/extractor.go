// -----------------------------------------------------------------------
// Page OCR Extractor - drives the OCR service per page and aggregates
// per-page text into an ordered, page-labeled document text
// -----------------------------------------------------------------------

package ocr

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/interfaces"
	"github.com/ternarybob/lumen/internal/models"
)

// Extractor rasterizes each page of a document, submits it to the OCR
// service, and aggregates the results in ascending page order. Page-level
// calls run in a bounded fan-out; ordering is re-established by page index,
// never by completion order.
type Extractor struct {
	rasterizer  interfaces.Rasterizer
	client      interfaces.OCRClient
	concurrency int
	logger      arbor.ILogger
}

// NewExtractor creates a new page OCR extractor
func NewExtractor(rasterizer interfaces.Rasterizer, client interfaces.OCRClient, concurrency int, logger arbor.ILogger) *Extractor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Extractor{
		rasterizer:  rasterizer,
		client:      client,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ExtractPages recognizes every page of the document at documentPath and
// returns the per-page results sorted by page number. A failure on any single
// page aborts the whole document's extraction: downstream consumers assume
// completeness and contiguous page numbering.
func (e *Extractor) ExtractPages(ctx context.Context, documentPath string) ([]models.PageText, error) {
	pageCount, err := e.rasterizer.PageCount(documentPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrPageExtraction, err)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	pages := make([]models.PageText, 0, pageCount)
	sem := make(chan struct{}, e.concurrency)

	for pageNumber := 1; pageNumber <= pageCount; pageNumber++ {
		mu.Lock()
		failed := firstErr != nil
		mu.Unlock()
		if failed {
			break
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(page int) {
			defer wg.Done()
			defer func() { <-sem }()

			text, err := e.extractPage(ctx, documentPath, page)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("%w: page %d: %v", interfaces.ErrPageExtraction, page, err)
				}
				return
			}
			pages = append(pages, models.PageText{PageNumber: page, Text: text})
		}(pageNumber)
	}

	wg.Wait()

	if firstErr != nil {
		e.logger.Error().Err(firstErr).Str("document", documentPath).Msg("Document extraction aborted")
		return nil, firstErr
	}

	// Re-establish physical page order regardless of completion order
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].PageNumber < pages[j].PageNumber
	})

	e.logger.Info().
		Str("document", documentPath).
		Int("pages", len(pages)).
		Msg("Document text extracted")

	return pages, nil
}

// ExtractText recognizes the whole document and returns its aggregated text:
// one "Page {i}:" block per page, in ascending order, joined with blank lines.
func (e *Extractor) ExtractText(ctx context.Context, documentPath string) (string, error) {
	pages, err := e.ExtractPages(ctx, documentPath)
	if err != nil {
		return "", err
	}

	blocks := make([]string, len(pages))
	for i, page := range pages {
		blocks[i] = fmt.Sprintf("Page %d:\n%s", page.PageNumber, page.Text)
	}

	return strings.Join(blocks, "\n\n"), nil
}

// extractPage renders one page and runs it through OCR. The page artifact is
// released on every exit path.
func (e *Extractor) extractPage(ctx context.Context, documentPath string, page int) (string, error) {
	artifact, err := e.rasterizer.RenderPage(ctx, documentPath, page)
	if err != nil {
		return "", err
	}
	defer artifact.Release()

	return e.client.Recognize(ctx, artifact.Path)
}
