// Package types holds the benchmark result types shared between the
// measurement engine and the output surface. Values are immutable once
// constructed.
package types

// LevelMetrics is the aggregate for one concurrency level.
//
// SuccessRate is an unrounded fraction in [0,1]; the derived rates and TTFT
// bounds are rounded to two decimal places for reporting.
type LevelMetrics struct {
	Concurrency      int     `json:"concurrency" yaml:"concurrency"`
	GenerationSpeed  float64 `json:"generation_speed" yaml:"generation-speed"`
	PromptThroughput float64 `json:"prompt_throughput" yaml:"prompt-throughput"`
	MinTTFT          float64 `json:"min_ttft" yaml:"min-ttft"`
	MaxTTFT          float64 `json:"max_ttft" yaml:"max-ttft"`
	SuccessRate      float64 `json:"success_rate" yaml:"success-rate"`
}

// BenchmarkRun is the top-level result of one benchmark invocation.
// Results are ordered by the configured concurrency levels.
type BenchmarkRun struct {
	ModelName   string         `json:"model_name" yaml:"model-name"`
	InputTokens int            `json:"input_tokens" yaml:"input-tokens"`
	MaxTokens   int            `json:"max_tokens" yaml:"max-tokens"`
	LatencyMs   float64        `json:"latency" yaml:"latency"`
	Results     []LevelMetrics `json:"results" yaml:"results"`
}
