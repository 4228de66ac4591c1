// Package tokens provides a heuristic token-count estimate for text when an
// authoritative count from the API is unavailable. Callers must treat results
// as approximate; the real tokenizer is model-specific.
package tokens

import (
	"math"
	"strings"
)

const (
	// Subword tokenization averages ~1.3 tokens per English word.
	tokensPerWord = 1.3
	// Content without word boundaries runs ~3 characters per token.
	charsPerToken = 3.0
)

// Estimate returns an approximate token count for text.
// Empty or whitespace-only input yields 0; any other input yields at least 1.
func Estimate(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	words := strings.Fields(trimmed)
	if len(words) > 1 {
		return max(1, int(math.Round(float64(len(words))*tokensPerWord)))
	}

	// Single run of non-space characters (punctuation, partial words):
	// character-based estimate is closer than counting it as one word.
	return max(1, int(math.Round(float64(len(trimmed))/charsPerToken)))
}
