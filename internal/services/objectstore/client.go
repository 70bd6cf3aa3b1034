// -----------------------------------------------------------------------
// Object Store Client - uploads document payloads to an external object
// store and returns their public URLs
// -----------------------------------------------------------------------

package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/common"
	"github.com/ternarybob/lumen/internal/interfaces"
)

// Client uploads binary payloads to an unsigned-preset object store
// endpoint and returns the publicly retrievable URL the store assigns.
type Client struct {
	config     *common.ObjectStoreConfig
	logger     arbor.ILogger
	httpClient *http.Client
}

var _ interfaces.ObjectStore = (*Client)(nil)

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// NewClient creates a new object store client
func NewClient(config *common.ObjectStoreConfig, logger arbor.ILogger) *Client {
	return &Client{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: common.ParseDurationOr(config.Timeout, 60*time.Second),
		},
	}
}

// Upload sends the payload to the object store under fileName and returns
// its public URL.
func (c *Client) Upload(ctx context.Context, fileName string, payload io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to create upload form: %w", err)
	}
	if _, err := io.Copy(part, payload); err != nil {
		return "", fmt.Errorf("failed to buffer upload payload: %w", err)
	}
	if err := writer.WriteField("upload_preset", c.config.Preset); err != nil {
		return "", fmt.Errorf("failed to set upload preset: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("object store upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("object store returned status %d: %s", resp.StatusCode, snippet)
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	fileURL := result.SecureURL
	if fileURL == "" {
		fileURL = result.URL
	}
	if fileURL == "" {
		return "", fmt.Errorf("object store response contained no file URL")
	}

	c.logger.Info().
		Str("file_name", fileName).
		Str("url", fileURL).
		Dur("duration", time.Since(startTime)).
		Msg("Document uploaded to object store")

	return fileURL, nil
}
