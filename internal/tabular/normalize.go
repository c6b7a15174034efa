package tabular

import (
	"regexp"
	"strings"
)

// nonWordChars matches everything that is neither a word character nor
// whitespace. Underscores survive cleaning so already-normalized headers
// round-trip unchanged.
var nonWordChars = regexp.MustCompile(`[^\w\s]`)

// NormalizeColumn canonicalizes a single raw header: trim, strip punctuation,
// spaces to underscores, lowercase. Any input is accepted.
func NormalizeColumn(raw string) string {
	h := strings.TrimSpace(raw)
	h = nonWordChars.ReplaceAllString(h, "")
	h = strings.ReplaceAll(h, " ", "_")
	return strings.ToLower(h)
}

// NormalizeColumns canonicalizes a header row, preserving length and order.
func NormalizeColumns(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = NormalizeColumn(h)
	}
	return out
}
