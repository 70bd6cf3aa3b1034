package summary

import (
	"strings"

	"github.com/ternarybob/lumen/internal/models"
)

// Render parses the completion service's markdown-ish response into
// structured lines. Each non-blank input line becomes one SummaryLine:
// a bullet line when it starts with a bullet marker, a plain paragraph
// otherwise. Blank lines are skipped; empty input renders to nothing.
func Render(text string) []models.SummaryLine {
	var lines []models.SummaryLine
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		bullet := false
		if rest, ok := splitBullet(line); ok {
			bullet = true
			line = rest
		}

		lines = append(lines, models.SummaryLine{
			Bullet: bullet,
			Spans:  tokenizeSpans(line),
		})
	}
	return lines
}

// splitBullet strips a leading bullet marker from line. Markers are only
// recognized at the start of the line.
func splitBullet(line string) (string, bool) {
	if strings.HasPrefix(line, "**") {
		// A leading bold marker is emphasis, not a bullet
		return line, false
	}
	for _, marker := range []string{"- ", "* ", "• ", "-", "*", "•"} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}
	return line, false
}

// tokenizeSpans splits one line into typed spans at double-asterisk
// markers. Segments alternate plain and bold starting plain; an unmatched
// trailing marker leaves its segment plain rather than swallowing it.
func tokenizeSpans(line string) []models.SummarySpan {
	segments := strings.Split(line, "**")
	var spans []models.SummarySpan
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		bold := i%2 == 1
		if bold && i == len(segments)-1 {
			// Opening marker with no close: treat the tail as plain
			bold = false
		}
		spans = append(spans, models.SummarySpan{Text: segment, Bold: bold})
	}
	return spans
}
