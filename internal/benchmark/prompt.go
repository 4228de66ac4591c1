package benchmark

import "github.com/perfkit/llmbench/internal/prompts"

// PromptSource produces the prompt for a single request. It is invoked once
// per request, so random sources yield an independent phrase per invocation.
// Implementations must be safe for concurrent use.
type PromptSource func() string

// FixedPrompt returns the same prompt text for every request.
func FixedPrompt(text string) PromptSource {
	return func() string { return text }
}

// RandomPrompt synthesizes a fresh random phrase of numWords words for every
// request, keeping prompts non-cacheable across concurrent requests.
func RandomPrompt(numWords int) PromptSource {
	return func() string { return prompts.RandomPhrase(numWords) }
}
