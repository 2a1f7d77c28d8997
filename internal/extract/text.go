package extract

import (
	"regexp"
	"strings"
)

var (
	horizontalWhitespace = regexp.MustCompile(`[ \t]+`)
	excessiveNewlines    = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText produces the canonical text every derivation works from:
// NUL bytes stripped, line endings normalized to \n, runs of tabs and spaces
// collapsed to a single space, three or more consecutive newlines collapsed
// to exactly two, and the whole trimmed. Individual lines are not trimmed,
// so a single leading space survives on indented lines.
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "\x00", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = horizontalWhitespace.ReplaceAllString(text, " ")
	text = excessiveNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
