package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"google.golang.org/genai"

	"github.com/ternarybob/lumen/internal/common"
	"github.com/ternarybob/lumen/internal/interfaces"
)

// GeminiService implements the CompletionService interface using the
// Google Gemini API.
type GeminiService struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  *genai.Client
	timeout time.Duration
}

var _ interfaces.CompletionService = (*GeminiService)(nil)

// NewGeminiService creates a new Gemini completion service. The API key is
// resolved KV-first with environment and config fallbacks.
func NewGeminiService(geminiConfig *common.GeminiConfig, kvStorage interfaces.KeyValueStorage, logger arbor.ILogger) (*GeminiService, error) {
	ctx := context.Background()
	apiKey, err := common.ResolveAPIKey(ctx, kvStorage, "gemini_api_key", geminiConfig.APIKey)
	if err != nil {
		return nil, fmt.Errorf("Google API key is required for Gemini service (set via LUMEN_GEMINI_API_KEY or gemini.api_key in config): %w", err)
	}

	if geminiConfig.Model == "" {
		geminiConfig.Model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &GeminiService{
		config:  geminiConfig,
		logger:  logger,
		client:  client,
		timeout: common.ParseDurationOr(geminiConfig.Timeout, 2*time.Minute),
	}

	logger.Debug().
		Str("model", geminiConfig.Model).
		Dur("timeout", service.timeout).
		Float32("temperature", geminiConfig.Temperature).
		Msg("Gemini completion service initialized")

	return service, nil
}

// Complete generates text for a single prompt.
func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(s.config.Temperature),
	}

	resp, err := s.client.Models.GenerateContent(timeoutCtx, s.config.Model, contents, config)
	if err != nil {
		s.logger.Error().Err(err).Str("model", s.config.Model).Msg("Gemini completion failed")
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	var response strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
			if response.Len() > 0 {
				break
			}
		}
	}
	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from Gemini API")
	}

	s.logger.Debug().
		Int("prompt_length", len(prompt)).
		Int("response_length", response.Len()).
		Dur("duration", time.Since(startTime)).
		Msg("Gemini completion succeeded")

	return response.String(), nil
}

// HealthCheck verifies the service can issue a minimal completion.
func (s *GeminiService) HealthCheck(ctx context.Context) error {
	healthCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText("ping", genai.RoleUser),
	}
	if _, err := s.client.Models.GenerateContent(healthCtx, s.config.Model, contents, nil); err != nil {
		return fmt.Errorf("Gemini health check failed: %w", err)
	}
	return nil
}

// Close releases resources held by the service.
func (s *GeminiService) Close() error {
	s.logger.Debug().Msg("Closing Gemini completion service")
	s.client = nil
	return nil
}
