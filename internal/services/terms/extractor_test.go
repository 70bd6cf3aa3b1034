package terms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestExtractSelectsLongNouns(t *testing.T) {
	extractor := NewExtractor(6, arbor.NewLogger())

	text := "Patient presents with mild hypertension and was prescribed medication."
	terms, err := extractor.Extract(text)
	require.NoError(t, err)

	assert.Contains(t, terms, "hypertension")
	assert.Contains(t, terms, "medication")
	assert.NotContains(t, terms, "mild", "adjectives are not candidates")
	assert.NotContains(t, terms, "with", "short function words are not candidates")
	assert.NotContains(t, terms, "Patient", "nouns at or under the length floor are skipped")
}

func TestExtractDeduplicatesCaseSensitively(t *testing.T) {
	extractor := NewExtractor(6, arbor.NewLogger())

	text := "Hypertension is chronic. The hypertension was treated. Hypertension persisted."
	terms, err := extractor.Extract(text)
	require.NoError(t, err)

	var upper, lower int
	for _, term := range terms {
		switch term {
		case "Hypertension":
			upper++
		case "hypertension":
			lower++
		}
	}
	assert.Equal(t, 1, upper)
	assert.Equal(t, 1, lower)
}

func TestExtractPreservesFirstSeenOrder(t *testing.T) {
	extractor := NewExtractor(6, arbor.NewLogger())

	text := "The tachycardia preceded the arrhythmia, and the tachycardia later resolved."
	terms, err := extractor.Extract(text)
	require.NoError(t, err)

	tachyIdx, arrhythmiaIdx := -1, -1
	for i, term := range terms {
		switch term {
		case "tachycardia":
			if tachyIdx == -1 {
				tachyIdx = i
			}
		case "arrhythmia":
			arrhythmiaIdx = i
		}
	}
	require.NotEqual(t, -1, tachyIdx)
	require.NotEqual(t, -1, arrhythmiaIdx)
	assert.Less(t, tachyIdx, arrhythmiaIdx)
}

func TestExtractEmptyText(t *testing.T) {
	extractor := NewExtractor(6, arbor.NewLogger())

	terms, err := extractor.Extract("   \n\t ")
	require.NoError(t, err)
	assert.Empty(t, terms)
}
