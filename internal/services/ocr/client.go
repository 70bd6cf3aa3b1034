package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/lumen/internal/common"
	"github.com/ternarybob/lumen/internal/interfaces"
)

// Client calls the external OCR service over HTTP. One raster image in, the
// recognized text out; a response without a text field means the service saw
// no text, which is not an error.
type Client struct {
	config     *common.OCRConfig
	logger     arbor.ILogger
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Compile-time assertion
var _ interfaces.OCRClient = (*Client)(nil)

// ocrResponse is the OCR service response shape
type ocrResponse struct {
	Text string `json:"text"`
}

// NewClient creates a new OCR service client
func NewClient(config *common.OCRConfig, logger arbor.ILogger) *Client {
	timeout := common.ParseDurationOr(config.Timeout, 60*time.Second)
	interval := common.ParseDurationOr(config.RateLimit, 500*time.Millisecond)

	return &Client{
		config:     config,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Recognize submits the image at imagePath to the OCR service and returns
// the recognized text
func (c *Client) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open page image: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(imagePath))
	if err != nil {
		return "", fmt.Errorf("failed to build OCR request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read page image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize OCR request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create OCR request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.config.APIKey != "" {
		req.Header.Set("apikey", c.config.APIKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR service returned status %d", resp.StatusCode)
	}

	var result ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}

	c.logger.Debug().
		Str("image", filepath.Base(imagePath)).
		Int("text_length", len(result.Text)).
		Dur("duration", time.Since(start)).
		Msg("OCR call completed")

	// Absent or empty text field means no recognizable text on the page
	return result.Text, nil
}
