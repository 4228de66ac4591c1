package report

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/perfkit/llmbench/internal/types"
)

func sampleRun() *types.BenchmarkRun {
	return &types.BenchmarkRun{
		ModelName:   "test-model",
		InputTokens: 45,
		MaxTokens:   512,
		LatencyMs:   2.2,
		Results: []types.LevelMetrics{
			{Concurrency: 1, GenerationSpeed: 56.14, PromptThroughput: 941.42, MinTTFT: 0.05, MaxTTFT: 0.05, SuccessRate: 1.0},
			{Concurrency: 2, GenerationSpeed: 98.32, PromptThroughput: 410.77, MinTTFT: 0.06, MaxTTFT: 0.11, SuccessRate: 0.5},
		},
	}
}

func TestFormatJSONRoundTrip(t *testing.T) {
	out, err := FormatJSON(sampleRun())
	require.NoError(t, err)

	var decoded types.BenchmarkRun
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, *sampleRun(), decoded)
}

func TestFormatYAMLRoundTrip(t *testing.T) {
	out, err := FormatYAML(sampleRun())
	require.NoError(t, err)
	assert.Contains(t, out, "model-name: test-model")

	var decoded types.BenchmarkRun
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, *sampleRun(), decoded)
}

func TestFormatMarkdown(t *testing.T) {
	out := FormatMarkdown(sampleRun())

	assert.Contains(t, out, "Test Model: test-model")
	assert.Contains(t, out, "Latency: 2.20 ms")
	assert.Contains(t, out, "| Concurrency | Generation Throughput (tokens/s) |")
	assert.Contains(t, out, "| 1 | 56.14 | 941.42 | 0.05 | 0.05 | 100.00% |")
	assert.Contains(t, out, "| 2 | 98.32 | 410.77 | 0.06 | 0.11 | 50.00% |")
}

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewConsoleReporter(&buf)

	run := sampleRun()
	reporter.PrintHeader(run.ModelName, run.InputTokens, run.MaxTokens, run.LatencyMs)
	for _, m := range run.Results {
		reporter.PrintResult(m)
	}
	reporter.PrintFooter()

	out := buf.String()
	assert.Contains(t, out, "Test Model:   test-model")
	assert.Contains(t, out, "Input Tokens: 45")
	assert.Contains(t, out, "Latency:      2.20 ms")
	assert.Contains(t, out, "| Concurrency |")
	assert.Contains(t, out, "56.14")
	assert.Contains(t, out, "100.00%")
	assert.Contains(t, out, "50.00%")
}
