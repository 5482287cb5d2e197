// Package token measures prompt text in model tokens.
package token

import "unicode/utf8"

// Counter measures text in tokens and cuts text at a token boundary.
// Implementations must be deterministic for identical input.
type Counter interface {
	// Count returns the number of tokens in text.
	Count(text string) int
	// Truncate returns the prefix of text that fits in maxTokens tokens.
	Truncate(text string, maxTokens int) string
}

// Estimator approximates token counts using the runes/4 heuristic.
// It needs no encoding data, which makes it the offline fallback and the
// deterministic choice for tests.
type Estimator struct{}

// NewEstimator creates an Estimator.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Count estimates the token count as runes/4. Uses rune count (not byte
// count) so multi-byte text is not over-counted.
func (e *Estimator) Count(text string) int {
	if len(text) == 0 {
		return 0
	}
	return utf8.RuneCountInString(text) / 4
}

// Truncate keeps roughly the first maxTokens worth of runes.
func (e *Estimator) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	maxRunes := maxTokens * 4
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes])
}
