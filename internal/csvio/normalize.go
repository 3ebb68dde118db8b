package csvio

import (
	"regexp"
	"strings"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9 ]+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// NormalizeHeader turns a raw CSV header into a column name.
// Leading and trailing whitespace runs also become underscores.
func NormalizeHeader(header string) string {
	name := strings.ToLower(header)
	name = disallowed.ReplaceAllString(name, "")
	return whitespace.ReplaceAllString(name, "_")
}

// NormalizeHeaders applies NormalizeHeader to every element. Duplicates are kept.
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NormalizeHeader(h)
	}
	return out
}
