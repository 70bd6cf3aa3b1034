// -----------------------------------------------------------------------
// Dictionary Client - looks up term definitions against a public
// dictionary HTTP API
// -----------------------------------------------------------------------

package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/common"
	"github.com/ternarybob/lumen/internal/interfaces"
)

// Client looks up a single term against the configured dictionary endpoint.
// The endpoint follows the dictionaryapi.dev shape: GET {endpoint}/{term}
// returns an array of entries, each with meanings and their definitions.
type Client struct {
	config     *common.DictionaryConfig
	logger     arbor.ILogger
	httpClient *http.Client
}

var _ interfaces.DictionaryClient = (*Client)(nil)

type dictionaryEntry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// NewClient creates a new dictionary client
func NewClient(config *common.DictionaryConfig, logger arbor.ILogger) *Client {
	return &Client{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: common.ParseDurationOr(config.Timeout, 10*time.Second),
		},
	}
}

// Lookup returns the first definition the dictionary offers for term.
// A term the dictionary does not know yields interfaces.ErrNoDefinition;
// transport and server failures are returned as-is.
func (c *Client) Lookup(ctx context.Context, term string) (string, error) {
	endpoint := strings.TrimSuffix(c.config.Endpoint, "/")
	requestURL := fmt.Sprintf("%s/%s", endpoint, url.PathEscape(term))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create dictionary request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", interfaces.ErrNoDefinition, term)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("dictionary returned status %d for %q", resp.StatusCode, term)
	}

	var entries []dictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return "", fmt.Errorf("failed to decode dictionary response: %w", err)
	}

	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			for _, def := range meaning.Definitions {
				if strings.TrimSpace(def.Definition) != "" {
					return def.Definition, nil
				}
			}
		}
	}

	return "", fmt.Errorf("%w: %s", interfaces.ErrNoDefinition, term)
}
