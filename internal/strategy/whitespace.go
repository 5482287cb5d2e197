package strategy

import (
	"regexp"
	"strings"
)

var (
	spaceRunPattern     = regexp.MustCompile(`[ \t]{2,}`)
	leadingSpacePattern = regexp.MustCompile(`(?m)^[ \t]+`)
	trailingPattern     = regexp.MustCompile(`(?m)[ \t]+$`)
	newlineRunPattern   = regexp.MustCompile(`\n{3,}`)
)

// NormalizeWhitespace collapses runs of blank lines to a single blank line,
// runs of spaces to one space, strips leading space on each line, and trims
// the result. Lossless with respect to non-whitespace content and
// idempotent.
func NormalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	text = leadingSpacePattern.ReplaceAllString(text, "")
	text = trailingPattern.ReplaceAllString(text, "")
	text = newlineRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
