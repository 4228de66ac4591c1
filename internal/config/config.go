// Package config holds the benchmark configuration consumed by the
// measurement engine.
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/perfkit/llmbench/internal/errs"
)

// Defaults for flag values.
const (
	DefaultMaxTokens       = 512
	DefaultConcurrencyList = "1,2,4,8,16,32,64,128"
)

// Config carries the resolved settings for one benchmark invocation.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string // auto-discovered when empty
	Prompt      string // fixed prompt; empty means random input
	NumWords    int    // random phrase length, used only when Prompt is empty
	Concurrency []int  // levels, in execution order
	MaxTokens   int
}

// UseRandomPrompt reports whether each request synthesizes its own prompt.
func (c *Config) UseRandomPrompt() bool { return c.Prompt == "" }

// Validate checks the configuration before any measurement starts.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return &errs.ConfigurationError{Reason: "base URL is required"}
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return &errs.ConfigurationError{Reason: "invalid base URL", Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return &errs.ConfigurationError{Reason: "base URL must include scheme and host"}
	}

	if c.MaxTokens <= 0 {
		return &errs.ConfigurationError{Reason: "max tokens must be positive"}
	}

	if len(c.Concurrency) == 0 {
		return &errs.ConfigurationError{Reason: "at least one concurrency level is required"}
	}
	for _, level := range c.Concurrency {
		if level <= 0 {
			return &errs.ConfigurationError{Reason: fmt.Sprintf("concurrency level must be positive, got %d", level)}
		}
	}

	if c.Prompt != "" && c.NumWords > 0 {
		return &errs.ConfigurationError{Reason: "prompt and num-words are mutually exclusive"}
	}
	if c.Prompt == "" && c.NumWords <= 0 {
		return &errs.ConfigurationError{Reason: "random input requires a positive word count"}
	}

	return nil
}

// ParseConcurrencyLevels parses a comma-separated list like "1,2,4" into
// ordered integer levels.
func ParseConcurrencyLevels(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	levels := make([]int, 0, len(parts))
	for _, part := range parts {
		level, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid concurrency level %q: %w", part, err)
		}
		levels = append(levels, level)
	}
	return levels, nil
}
