// -----------------------------------------------------------------------
// Summary Service - builds chronological prompts over medical history
// records and renders the completion service's response
// -----------------------------------------------------------------------

package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/interfaces"
	"github.com/ternarybob/lumen/internal/models"
)

// Result pairs the completion service's raw response with its structured
// rendering.
type Result struct {
	Text  string               `json:"text"`
	Lines []models.SummaryLine `json:"lines"`
}

// Service produces layperson summaries of one or many medical records.
// Completions are never cached: prompts are a function of a mutable record
// set, so every call submits a fresh request.
type Service struct {
	completion interfaces.CompletionService
	logger     arbor.ILogger
}

// NewService creates a new summary service
func NewService(completion interfaces.CompletionService, logger arbor.ILogger) *Service {
	return &Service{
		completion: completion,
		logger:     logger,
	}
}

// Summarize folds a subject's history records into one chronological prompt
// and returns the generated summary. An empty record set renders nothing
// rather than invoking the completion service.
func (s *Service) Summarize(ctx context.Context, records []models.MedicalHistoryRecord) (*Result, error) {
	if len(records) == 0 {
		return &Result{}, nil
	}

	prompt := BuildPrompt(records)
	response, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Int("records", len(records)).Msg("Summary completion failed")
		return nil, fmt.Errorf("%w: %v", interfaces.ErrSummarizeFailed, err)
	}
	if strings.TrimSpace(response) == "" {
		return nil, fmt.Errorf("%w: completion returned empty response", interfaces.ErrSummarizeFailed)
	}

	s.logger.Info().
		Int("records", len(records)).
		Int("response_chars", len(response)).
		Msg("Summary generated")

	return &Result{Text: response, Lines: Render(response)}, nil
}

// SummarizeDocument summarizes a single extracted text dated at timestamp.
func (s *Service) SummarizeDocument(ctx context.Context, text string, timestamp time.Time) (*Result, error) {
	return s.Summarize(ctx, []models.MedicalHistoryRecord{
		{ExtractedText: text, Timestamp: timestamp},
	})
}
