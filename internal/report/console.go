// Package report renders a BenchmarkRun as a console table, JSON, YAML, or a
// Markdown file. It never feeds back into the measurement engine.
package report

import (
	"fmt"
	"io"

	"github.com/perfkit/llmbench/internal/types"
)

const tableRule = "================================================================================================================"

// ConsoleReporter prints the benchmark header and a fixed-width results table
// row by row, so each level appears as soon as it settles.
type ConsoleReporter struct {
	w io.Writer
}

// NewConsoleReporter writes to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

// PrintHeader prints the run parameters measured during setup.
func (r *ConsoleReporter) PrintHeader(modelName string, inputTokens, maxTokens int, latencyMs float64) {
	fmt.Fprintln(r.w, tableRule)
	fmt.Fprintf(r.w, "Test Model:   %s\n", modelName)
	fmt.Fprintf(r.w, "Input Tokens: %d\n", inputTokens)
	fmt.Fprintf(r.w, "Max Tokens:   %d\n", maxTokens)
	fmt.Fprintf(r.w, "Latency:      %.2f ms\n", latencyMs)
	fmt.Fprintln(r.w, tableRule)
	fmt.Fprintln(r.w, "| Concurrency | Generation Throughput (tokens/s) |  Prompt Throughput (tokens/s) | Min TTFT (s) | Max TTFT (s) | Success Rate |")
	fmt.Fprintln(r.w, "|-------------|----------------------------------|-------------------------------|--------------|--------------|--------------|")
}

// PrintResult prints one level's row.
func (r *ConsoleReporter) PrintResult(m types.LevelMetrics) {
	fmt.Fprintf(r.w, "| %11d | %32.2f | %29.2f | %12.2f | %12.2f | %11.2f%% |\n",
		m.Concurrency,
		m.GenerationSpeed,
		m.PromptThroughput,
		m.MinTTFT,
		m.MaxTTFT,
		m.SuccessRate*100,
	)
}

// PrintFooter closes the table.
func (r *ConsoleReporter) PrintFooter() {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, tableRule)
}
