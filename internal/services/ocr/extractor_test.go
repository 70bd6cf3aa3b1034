package ocr

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/interfaces"
)

// fakeRasterizer hands out artifacts backed by no real files and counts
// how many were released.
type fakeRasterizer struct {
	pageCount int
	rendered  atomic.Int32
	released  atomic.Int32
	failPage  int
}

func (f *fakeRasterizer) PageCount(string) (int, error) {
	if f.pageCount == 0 {
		return 0, errors.New("document has no pages")
	}
	return f.pageCount, nil
}

func (f *fakeRasterizer) RenderPage(_ context.Context, _ string, page int) (*interfaces.PageArtifact, error) {
	if f.failPage != 0 && page == f.failPage {
		return nil, errors.New("render failed")
	}
	f.rendered.Add(1)
	release := func() error {
		f.released.Add(1)
		return nil
	}
	return interfaces.NewPageArtifact(page, fmt.Sprintf("page-%d.jpg", page), 100, 140, release), nil
}

// fakeOCR returns "text {page}" derived from the artifact path, completing
// later pages first to simulate out-of-order completion.
type fakeOCR struct {
	mu       sync.Mutex
	calls    []string
	failPath string
	shuffle  bool
}

func (f *fakeOCR) Recognize(_ context.Context, imagePath string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, imagePath)
	f.mu.Unlock()

	if imagePath == f.failPath {
		return "", errors.New("ocr unavailable")
	}

	page, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(imagePath, "page-"), ".jpg"))
	if f.shuffle {
		// Earlier pages sleep longer so completion order is reversed
		time.Sleep(time.Duration(10-page) * 5 * time.Millisecond)
	}
	if page == 2 {
		return "", nil // page with no recognizable text
	}
	return fmt.Sprintf("text %d", page), nil
}

func TestExtractTextOrdersPagesRegardlessOfCompletion(t *testing.T) {
	rasterizer := &fakeRasterizer{pageCount: 5}
	client := &fakeOCR{shuffle: true}
	extractor := NewExtractor(rasterizer, client, 5, arbor.NewLogger())

	text, err := extractor.ExtractText(context.Background(), "doc.pdf")
	require.NoError(t, err)

	blocks := strings.Split(text, "\n\n")
	require.Len(t, blocks, 5)
	for i, block := range blocks {
		assert.True(t, strings.HasPrefix(block, fmt.Sprintf("Page %d:\n", i+1)),
			"block %d = %q", i, block)
	}

	// Page with no recognizable text still gets its block
	assert.Equal(t, "Page 2:\n", blocks[1])
	assert.Equal(t, "Page 5:\ntext 5", blocks[4])
}

func TestExtractPagesFailFast(t *testing.T) {
	rasterizer := &fakeRasterizer{pageCount: 4}
	client := &fakeOCR{failPath: "page-3.jpg"}
	extractor := NewExtractor(rasterizer, client, 1, arbor.NewLogger())

	_, err := extractor.ExtractPages(context.Background(), "doc.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrPageExtraction))
	assert.Contains(t, err.Error(), "page 3")
}

func TestExtractPagesRasterFailureAttributedToPage(t *testing.T) {
	rasterizer := &fakeRasterizer{pageCount: 3, failPage: 2}
	client := &fakeOCR{}
	extractor := NewExtractor(rasterizer, client, 1, arbor.NewLogger())

	_, err := extractor.ExtractPages(context.Background(), "doc.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrPageExtraction))
	assert.Contains(t, err.Error(), "page 2")
}

func TestExtractPagesReleasesEveryArtifact(t *testing.T) {
	rasterizer := &fakeRasterizer{pageCount: 6}
	client := &fakeOCR{shuffle: true}
	extractor := NewExtractor(rasterizer, client, 3, arbor.NewLogger())

	_, err := extractor.ExtractPages(context.Background(), "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, rasterizer.rendered.Load(), rasterizer.released.Load())
}

func TestExtractPagesReleasesArtifactsOnFailure(t *testing.T) {
	rasterizer := &fakeRasterizer{pageCount: 3}
	client := &fakeOCR{failPath: "page-1.jpg"}
	extractor := NewExtractor(rasterizer, client, 1, arbor.NewLogger())

	_, err := extractor.ExtractPages(context.Background(), "doc.pdf")
	require.Error(t, err)
	assert.Equal(t, rasterizer.rendered.Load(), rasterizer.released.Load())
}

func TestExtractPagesEmptyDocument(t *testing.T) {
	rasterizer := &fakeRasterizer{pageCount: 0}
	client := &fakeOCR{}
	extractor := NewExtractor(rasterizer, client, 2, arbor.NewLogger())

	_, err := extractor.ExtractPages(context.Background(), "empty.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrPageExtraction))
}
