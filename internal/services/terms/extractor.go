// -----------------------------------------------------------------------
// Term Extractor - pulls candidate medical terms out of extracted
// document text using part-of-speech tagging
// -----------------------------------------------------------------------

package terms

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/ternarybob/arbor"
)

const defaultMinLength = 6

// Extractor selects candidate medical terms from free text. A token
// qualifies when it is tagged as a noun and is longer than the configured
// minimum length; shorter nouns are overwhelmingly common English words
// rather than clinical vocabulary.
type Extractor struct {
	minLength int
	logger    arbor.ILogger
}

// NewExtractor creates a new term extractor
func NewExtractor(minLength int, logger arbor.ILogger) *Extractor {
	if minLength < 1 {
		minLength = defaultMinLength
	}
	return &Extractor{
		minLength: minLength,
		logger:    logger,
	}
}

// Extract returns the distinct candidate terms of text in first-occurrence
// order. Deduplication is case-sensitive: "Metformin" and "metformin" are
// distinct candidates and the dictionary resolves them independently.
func (e *Extractor) Extract(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("failed to tag document text: %w", err)
	}

	seen := make(map[string]struct{})
	var terms []string
	for _, tok := range doc.Tokens() {
		if !strings.HasPrefix(tok.Tag, "NN") {
			continue
		}
		if len(tok.Text) <= e.minLength {
			continue
		}
		if _, ok := seen[tok.Text]; ok {
			continue
		}
		seen[tok.Text] = struct{}{}
		terms = append(terms, tok.Text)
	}

	e.logger.Debug().
		Int("tokens", len(doc.Tokens())).
		Int("terms", len(terms)).
		Msg("Candidate terms extracted")

	return terms, nil
}
