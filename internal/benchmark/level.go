package benchmark

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/perfkit/llmbench/internal/api"
	"github.com/perfkit/llmbench/internal/types"
)

// Requester issues a single streaming chat completion. *api.Client is the
// production implementation; tests substitute fakes.
type Requester interface {
	StreamCompletion(ctx context.Context, model, prompt string, maxTokens int, onProgress api.ProgressFunc) (api.StreamResult, error)
}

// Level runs one concurrency level: a fan-out of identical streaming
// requests against the shared client.
type Level struct {
	Requester   Requester
	Model       string
	Prompts     PromptSource
	MaxTokens   int
	LatencyMs   float64
	Concurrency int
	OnProgress  api.ProgressFunc
}

// outcome is the settled result of one request attempt.
type outcome struct {
	ttft             float64
	completionTokens int
	promptTokens     int
	err              error
}

// Run launches exactly Concurrency requests concurrently, waits for all of
// them to settle, and aggregates the outcomes. A failing request never
// cancels or affects its siblings; it only lowers the success rate.
func (l *Level) Run(ctx context.Context) types.LevelMetrics {
	results := make([]outcome, l.Concurrency)

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < l.Concurrency; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()

			res, err := l.Requester.StreamCompletion(ctx, l.Model, l.Prompts(), l.MaxTokens, l.OnProgress)
			if err != nil {
				results[index] = outcome{err: err}
				return
			}
			results[index] = outcome{
				ttft:             res.TTFT,
				completionTokens: res.CompletionTokens,
				promptTokens:     res.PromptTokens,
			}
		}(i)
	}

	wg.Wait()
	duration := time.Since(start).Seconds()

	return aggregate(results, l.Concurrency, duration, l.LatencyMs)
}

// aggregate derives the level metrics from settled request outcomes.
// durationSec is wall-clock time from fan-out launch to last settlement.
func aggregate(results []outcome, concurrency int, durationSec, latencyMs float64) types.LevelMetrics {
	metrics := types.LevelMetrics{Concurrency: concurrency}
	if concurrency == 0 {
		return metrics
	}

	var (
		successes             int
		totalCompletionTokens int
		totalPromptTokens     int
		minTTFT               = math.Inf(1)
		maxTTFT               float64
	)
	for _, r := range results {
		if r.err != nil {
			continue
		}
		successes++
		totalCompletionTokens += r.completionTokens
		totalPromptTokens += r.promptTokens
		if r.ttft < minTTFT {
			minTTFT = r.ttft
		}
		if r.ttft > maxTTFT {
			maxTTFT = r.ttft
		}
	}

	metrics.SuccessRate = float64(successes) / float64(concurrency)

	if successes == 0 {
		minTTFT, maxTTFT = 0, 0
	}

	latencySec := latencyMs / 1000
	if durationSec > latencySec {
		metrics.GenerationSpeed = roundToTwoDecimals(float64(totalCompletionTokens) / (durationSec - latencySec))
	}
	// Prompt processing finishes by the time the first token streams back,
	// so max TTFT minus network latency approximates prompt-processing time.
	if maxTTFT > latencySec {
		metrics.PromptThroughput = roundToTwoDecimals(float64(totalPromptTokens) / (maxTTFT - latencySec))
	}

	metrics.MinTTFT = roundToTwoDecimals(minTTFT)
	metrics.MaxTTFT = roundToTwoDecimals(maxTTFT)

	return metrics
}

func roundToTwoDecimals(f float64) float64 {
	return math.Round(f*100) / 100
}
