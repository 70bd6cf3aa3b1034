package dictionary

import (
	"regexp"
	"strings"
)

// longWordPattern matches contiguous alphabetic runs long enough to be
// concatenated compound technical terms rather than ordinary words.
var longWordPattern = regexp.MustCompile(`[A-Za-z]{12,}`)

// Simplify rewrites a definition so concatenated compound terms read as
// plain word sequences: every alphabetic run of 12 or more characters is
// split at internal lower-to-upper letter boundaries and lowercased.
// Text with no such runs passes through unchanged, which makes the
// transform idempotent.
func Simplify(definition string) string {
	return longWordPattern.ReplaceAllStringFunc(definition, func(word string) string {
		var b strings.Builder
		b.Grow(len(word) + 4)
		runes := []rune(word)
		for i, r := range runes {
			if i > 0 && isLower(runes[i-1]) && isUpper(r) {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
		}
		return strings.ToLower(b.String())
	})
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
