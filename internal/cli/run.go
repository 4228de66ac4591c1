package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/perfkit/llmbench/internal/api"
	"github.com/perfkit/llmbench/internal/benchmark"
	"github.com/perfkit/llmbench/internal/config"
	"github.com/perfkit/llmbench/internal/prompts"
	"github.com/perfkit/llmbench/internal/report"
)

var (
	baseURL        string
	apiKey         string
	model          string
	prompt         string
	numWords       int
	concurrencyStr string
	maxTokens      int
	outputFormat   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark",
	Long: `Runs the benchmark against the endpoint: one latency probe, then each
concurrency level in order. Each level fans out that many simultaneous
streaming chat completions and aggregates their timings and token counts.
A Markdown copy of the results is always saved next to the console output.`,
	Example: `  # Benchmark a local server, auto-discovering the model
  llmbench run -u http://localhost:8080/v1

  # Fixed prompt, specific levels
  llmbench run -u https://api.example.com/v1 -k sk-... -p "Write a story" -c 1,2,4

  # Random 200-word prompts, JSON output
  llmbench run -u http://localhost:8080/v1 -n 200 -f json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		levels, err := config.ParseConcurrencyLevels(concurrencyStr)
		if err != nil {
			return err
		}

		cfg := &config.Config{
			BaseURL:     baseURL,
			APIKey:      apiKey,
			Model:       model,
			Prompt:      prompt,
			NumWords:    numWords,
			Concurrency: levels,
			MaxTokens:   maxTokens,
		}
		if cfg.Prompt == "" && cfg.NumWords == 0 {
			cfg.NumWords = prompts.DefaultNumWords
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		client := api.NewClient(cfg.BaseURL, cfg.APIKey)
		runner := benchmark.NewRunner(cfg, client)

		// Live rendering only makes sense on the console; JSON/YAML output
		// stays machine-readable.
		console := outputFormat != "json" && outputFormat != "yaml"
		if console {
			reporter := report.NewConsoleReporter(os.Stdout)
			runner.OnSetup = func(model string, inputTokens int, latencyMs float64) {
				reporter.PrintHeader(model, inputTokens, cfg.MaxTokens, latencyMs)
			}
			runner.OnResult = reporter.PrintResult
			runner.Progress = func(concurrency int) api.ProgressFunc {
				bar := progressbar.NewOptions(concurrency*cfg.MaxTokens,
					progressbar.OptionSetDescription(fmt.Sprintf("concurrency %d", concurrency)),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionClearOnFinish(),
					progressbar.OptionShowCount(),
				)
				return func(tokenDelta int) {
					_ = bar.Add(tokenDelta)
				}
			}
		}

		result, err := runner.Run(cmd.Context())
		if err != nil {
			return err
		}

		switch outputFormat {
		case "json":
			out, err := report.FormatJSON(result)
			if err != nil {
				return err
			}
			fmt.Println(out)
		case "yaml":
			out, err := report.FormatYAML(result)
			if err != nil {
				return err
			}
			fmt.Println(out)
		default:
			report.NewConsoleReporter(os.Stdout).PrintFooter()
		}

		filename, err := report.SaveMarkdown(result)
		if err != nil {
			return err
		}
		slog.Info("results saved", "file", filename)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&baseURL, "base-url", "u", "", "Base URL of the OpenAI-compatible API (required)")
	runCmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "API key for authentication")
	runCmd.Flags().StringVarP(&model, "model", "m", "", "Model to benchmark (auto-discovered if not provided)")
	runCmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Fixed prompt text (mutually exclusive with --num-words)")
	runCmd.Flags().IntVarP(&numWords, "num-words", "n", 0, "Number of random words per prompt (default 100 when no prompt is given)")
	runCmd.Flags().StringVarP(&concurrencyStr, "concurrency", "c", config.DefaultConcurrencyList, "Comma-separated list of concurrency levels")
	runCmd.Flags().IntVarP(&maxTokens, "max-tokens", "t", config.DefaultMaxTokens, "Maximum number of tokens to generate per request")
	runCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: json, yaml or console (default)")

	_ = runCmd.MarkFlagRequired("base-url")
}
