package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/perfkit/llmbench/internal/types"
)

// DefaultMarkdownFilename is the suffix of the saved results file; a
// timestamp prefix keeps repeated runs from overwriting each other.
const DefaultMarkdownFilename = "benchmark_results.md"

// FormatMarkdown renders the run as a Markdown summary and table.
func FormatMarkdown(run *types.BenchmarkRun) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Test Model: %s\n", run.ModelName)
	fmt.Fprintf(&b, "Input Tokens: %d\n", run.InputTokens)
	fmt.Fprintf(&b, "Max Tokens: %d\n", run.MaxTokens)
	fmt.Fprintf(&b, "Latency: %.2f ms\n", run.LatencyMs)
	b.WriteString("\n")

	b.WriteString("| Concurrency | Generation Throughput (tokens/s) | Prompt Throughput (tokens/s) | Min TTFT (s) | Max TTFT (s) | Success Rate |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")

	for _, m := range run.Results {
		fmt.Fprintf(&b, "| %d | %.2f | %.2f | %.2f | %.2f | %.2f%% |\n",
			m.Concurrency,
			m.GenerationSpeed,
			m.PromptThroughput,
			m.MinTTFT,
			m.MaxTTFT,
			m.SuccessRate*100,
		)
	}

	return b.String()
}

// SaveMarkdown writes the Markdown report to a timestamped file in the
// current directory and returns the file name.
func SaveMarkdown(run *types.BenchmarkRun) (string, error) {
	filename := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), DefaultMarkdownFilename)
	if err := os.WriteFile(filename, []byte(FormatMarkdown(run)), 0644); err != nil {
		return "", fmt.Errorf("failed to save results to %s: %w", filename, err)
	}
	return filename, nil
}
