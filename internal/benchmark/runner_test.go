package benchmark

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfkit/llmbench/internal/config"
	"github.com/perfkit/llmbench/internal/errs"
	"github.com/perfkit/llmbench/internal/types"
)

// fakeClient adds model discovery on top of fakeRequester.
type fakeClient struct {
	fakeRequester
	model    string
	modelErr error
}

func (f *fakeClient) FirstAvailableModel(ctx context.Context) (string, error) {
	return f.model, f.modelErr
}

// probeTarget is a live HTTP server for the latency probe.
func probeTarget(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRunnerAssemblesResults(t *testing.T) {
	server := probeTarget(t)

	client := &fakeClient{
		fakeRequester: fakeRequester{ttft: 0.05, completion: 20, prompt: 10},
		model:         "discovered-model",
	}
	cfg := &config.Config{
		BaseURL:     server.URL,
		NumWords:    50,
		Concurrency: []int{1, 2},
		MaxTokens:   64,
	}

	runner := NewRunner(cfg, client)

	var setupModel string
	var setupLatency float64
	var resultHooks []types.LevelMetrics
	runner.OnSetup = func(model string, inputTokens int, latencyMs float64) {
		setupModel = model
		setupLatency = latencyMs
	}
	runner.OnResult = func(m types.LevelMetrics) { resultHooks = append(resultHooks, m) }

	run, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "discovered-model", run.ModelName)
	assert.Equal(t, 64, run.MaxTokens)
	assert.Greater(t, run.LatencyMs, 0.0)
	// Random input: the reported estimate comes from one sample synthesis.
	assert.Greater(t, run.InputTokens, 0)

	require.Len(t, run.Results, 2)
	assert.Equal(t, 1, run.Results[0].Concurrency)
	assert.Equal(t, 2, run.Results[1].Concurrency)
	assert.Equal(t, 3, client.calls)

	assert.Equal(t, "discovered-model", setupModel)
	assert.Equal(t, run.LatencyMs, setupLatency)
	assert.Equal(t, run.Results, resultHooks)
}

func TestRunnerFixedPromptInputTokens(t *testing.T) {
	server := probeTarget(t)

	client := &fakeClient{
		fakeRequester: fakeRequester{ttft: 0.05, completion: 20},
		model:         "m",
	}
	cfg := &config.Config{
		BaseURL:     server.URL,
		Model:       "given-model",
		Prompt:      "hello world",
		Concurrency: []int{1},
		MaxTokens:   64,
	}

	run, err := NewRunner(cfg, client).Run(context.Background())
	require.NoError(t, err)

	// Estimated once from the fixed prompt, no discovery call needed.
	assert.Equal(t, "given-model", run.ModelName)
	assert.Equal(t, 3, run.InputTokens)
}

func TestRunnerLevelsAreSerialized(t *testing.T) {
	server := probeTarget(t)

	client := &fakeClient{
		fakeRequester: fakeRequester{ttft: 0.01, completion: 5, delay: 20 * time.Millisecond},
		model:         "m",
	}
	cfg := &config.Config{
		BaseURL:     server.URL,
		Model:       "m",
		NumWords:    10,
		Concurrency: []int{2, 2},
		MaxTokens:   64,
	}

	_, err := NewRunner(cfg, client).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, client.starts, 4)

	// Calls 1-2 belong to the first level; the second level must not start
	// until both have settled.
	firstLevelEnd := client.ends[0]
	if client.ends[1].After(firstLevelEnd) {
		firstLevelEnd = client.ends[1]
	}
	secondLevelStart := client.starts[2]
	if client.starts[3].Before(secondLevelStart) {
		secondLevelStart = client.starts[3]
	}
	assert.False(t, secondLevelStart.Before(firstLevelEnd), "second level overlapped the first")
}

func TestRunnerModelDiscoveryFailure(t *testing.T) {
	server := probeTarget(t)

	client := &fakeClient{modelErr: &errs.ConfigurationError{Reason: "no models available"}}
	cfg := &config.Config{
		BaseURL:     server.URL,
		NumWords:    10,
		Concurrency: []int{1},
		MaxTokens:   64,
	}

	_, err := NewRunner(cfg, client).Run(context.Background())
	require.Error(t, err)

	var confErr *errs.ConfigurationError
	assert.ErrorAs(t, err, &confErr)
	assert.Zero(t, client.calls, "no requests may run after a setup failure")
}

func TestRunnerLatencyProbeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := &fakeClient{model: "m"}
	cfg := &config.Config{
		BaseURL:     url,
		Model:       "m",
		NumWords:    10,
		Concurrency: []int{1},
		MaxTokens:   64,
	}

	_, err := NewRunner(cfg, client).Run(context.Background())
	require.Error(t, err)

	var netErr *errs.NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Zero(t, client.calls)
}
