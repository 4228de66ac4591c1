// Package api wraps the OpenAI-compatible endpoint: model discovery and the
// streaming chat-completion request that the benchmark times.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/perfkit/llmbench/internal/errs"
	"github.com/perfkit/llmbench/internal/tokens"
)

// ProgressFunc observes incremental completion-token estimates as stream
// fragments arrive. It must be safe to call concurrently from multiple
// request goroutines. The final call for a request may carry a signed delta
// reconciling the running estimate to the authoritative usage count.
type ProgressFunc func(tokenDelta int)

// StreamResult carries the timings and token counts observed for one
// streaming request.
type StreamResult struct {
	// TTFT is the elapsed time in seconds from request submission to the
	// first non-whitespace content fragment; 0 if none was ever observed.
	TTFT float64
	// CompletionTokens is authoritative when the stream reported usage,
	// otherwise the accumulated estimate.
	CompletionTokens int
	// PromptTokens is authoritative when the stream reported usage,
	// otherwise 0.
	PromptTokens int
}

// Client talks to one OpenAI-compatible endpoint. The underlying connection
// pool is shared by all concurrent requests within a level.
type Client struct {
	oai *openai.Client
}

// NewClient builds a client for the given base URL and optional API key.
func NewClient(baseURL, apiKey string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{oai: openai.NewClientWithConfig(cfg)}
}

// FirstAvailableModel lists the endpoint's models and returns the first ID.
func (c *Client) FirstAvailableModel(ctx context.Context) (string, error) {
	modelList, err := c.oai.ListModels(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list models: %w", err)
	}
	if len(modelList.Models) == 0 {
		return "", &errs.ConfigurationError{Reason: "no models available"}
	}
	return modelList.Models[0].ID, nil
}

// StreamCompletion sends prompt as a single user message and walks the
// response stream, recording time to first token and accumulating a token
// estimate per content fragment. If the stream ends with an authoritative
// usage report, that supersedes the estimate and onProgress (when non-nil)
// receives one final signed delta so its running total reconciles exactly.
func (c *Client) StreamCompletion(ctx context.Context, model, prompt string, maxTokens int, onProgress ProgressFunc) (StreamResult, error) {
	start := time.Now()

	stream, err := c.oai.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			// Keep the deprecated `MaxTokens` for backward compatibility
			// with some older OpenAI-compatible servers.
			MaxTokens:           maxTokens,
			MaxCompletionTokens: maxTokens,
			Temperature:         1,
			Stream:              true,
			StreamOptions: &openai.StreamOptions{
				IncludeUsage: true,
			},
		},
	)
	if err != nil {
		return StreamResult{}, fmt.Errorf("chat completion request failed: %w", err)
	}
	defer stream.Close()

	var (
		result          StreamResult
		firstTokenSeen  bool
		estimatedTokens int
		lastUsage       *openai.Usage
	)

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return StreamResult{}, fmt.Errorf("stream error: %w", err)
		}

		if len(resp.Choices) > 0 {
			content := resp.Choices[0].Delta.Content

			if !firstTokenSeen && strings.TrimSpace(content) != "" {
				result.TTFT = time.Since(start).Seconds()
				firstTokenSeen = true
			}

			if content != "" {
				newTokens := tokens.Estimate(content)
				estimatedTokens += newTokens
				if onProgress != nil {
					onProgress(newTokens)
				}
			}
		}

		if resp.Usage != nil {
			lastUsage = resp.Usage
		}
	}

	result.CompletionTokens = estimatedTokens
	if lastUsage != nil {
		result.PromptTokens = lastUsage.PromptTokens
		result.CompletionTokens = lastUsage.CompletionTokens

		if onProgress != nil {
			if diff := lastUsage.CompletionTokens - estimatedTokens; diff != 0 {
				onProgress(diff)
			}
		}
	}

	return result, nil
}
