// Package benchmark contains the concurrent measurement engine: the
// per-level fan-out of streaming requests and the orchestrator that sequences
// latency probing and the configured concurrency levels.
package benchmark

import (
	"context"
	"log/slog"

	"github.com/perfkit/llmbench/internal/api"
	"github.com/perfkit/llmbench/internal/config"
	"github.com/perfkit/llmbench/internal/latency"
	"github.com/perfkit/llmbench/internal/prompts"
	"github.com/perfkit/llmbench/internal/tokens"
	"github.com/perfkit/llmbench/internal/types"
)

// Client is the endpoint capability the orchestrator depends on.
type Client interface {
	Requester
	FirstAvailableModel(ctx context.Context) (string, error)
}

// Runner orchestrates a full benchmark: model resolution, one latency probe,
// then each configured concurrency level strictly in order.
type Runner struct {
	cfg    *config.Config
	client Client
	log    *slog.Logger

	// Progress, when set, is called before each level starts and returns the
	// token-progress observer for that level, or nil for none.
	Progress func(concurrency int) api.ProgressFunc
	// OnSetup, when set, is called once after model resolution and the
	// latency probe, before any level runs.
	OnSetup func(model string, inputTokens int, latencyMs float64)
	// OnResult, when set, is called with each level's metrics as it settles.
	OnResult func(types.LevelMetrics)
}

// NewRunner builds a Runner for the given configuration and client.
func NewRunner(cfg *config.Config, client Client) *Runner {
	return &Runner{
		cfg:    cfg,
		client: client,
		log:    slog.Default(),
	}
}

// Run executes the benchmark and assembles the result set.
//
// Failures during setup (model resolution, latency probe) abort the run:
// they indicate the endpoint is unreachable or misconfigured, making
// per-level measurement meaningless. Per-request failures inside a level
// never propagate; they only lower that level's success rate.
func (r *Runner) Run(ctx context.Context) (*types.BenchmarkRun, error) {
	model := r.cfg.Model
	if model == "" {
		discovered, err := r.client.FirstAvailableModel(ctx)
		if err != nil {
			return nil, err
		}
		model = discovered
		r.log.Debug("discovered model", "model", model)
	}

	source := FixedPrompt(r.cfg.Prompt)
	sampleInput := r.cfg.Prompt
	if r.cfg.UseRandomPrompt() {
		source = RandomPrompt(r.cfg.NumWords)
		// One sample synthesis at the configured word count; the estimate is
		// reported, never scored.
		sampleInput = prompts.RandomPhrase(r.cfg.NumWords)
	}
	inputTokens := tokens.Estimate(sampleInput)

	// Latency is a property of the network path, not of the load level, so
	// it is probed exactly once and reused for every level's derived rates.
	latencyMs, err := latency.Measure(ctx, r.cfg.BaseURL, latency.DefaultAttempts)
	if err != nil {
		return nil, err
	}
	r.log.Debug("measured latency", "latency_ms", latencyMs)

	if r.OnSetup != nil {
		r.OnSetup(model, inputTokens, latencyMs)
	}

	run := &types.BenchmarkRun{
		ModelName:   model,
		InputTokens: inputTokens,
		MaxTokens:   r.cfg.MaxTokens,
		LatencyMs:   latencyMs,
	}

	// Levels run fully serialized so one level's load does not contaminate
	// the next level's measurement.
	for _, concurrency := range r.cfg.Concurrency {
		var onProgress api.ProgressFunc
		if r.Progress != nil {
			onProgress = r.Progress(concurrency)
		}

		level := &Level{
			Requester:   r.client,
			Model:       model,
			Prompts:     source,
			MaxTokens:   r.cfg.MaxTokens,
			LatencyMs:   latencyMs,
			Concurrency: concurrency,
			OnProgress:  onProgress,
		}

		metrics := level.Run(ctx)
		run.Results = append(run.Results, metrics)

		r.log.Debug("level complete",
			"concurrency", concurrency,
			"generation_speed", metrics.GenerationSpeed,
			"success_rate", metrics.SuccessRate,
		)

		if r.OnResult != nil {
			r.OnResult(metrics)
		}
	}

	return run, nil
}
