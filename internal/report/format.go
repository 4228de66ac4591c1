package report

import (
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/perfkit/llmbench/internal/types"
)

// FormatJSON serializes the run as indented JSON.
func FormatJSON(run *types.BenchmarkRun) (string, error) {
	prettyJSON, err := json.MarshalIndent(run, "", "    ")
	if err != nil {
		return "", fmt.Errorf("error marshalling JSON: %w", err)
	}
	return string(prettyJSON), nil
}

// FormatYAML serializes the run as YAML.
func FormatYAML(run *types.BenchmarkRun) (string, error) {
	yamlData, err := yaml.Marshal(run)
	if err != nil {
		return "", fmt.Errorf("error marshalling YAML: %w", err)
	}
	return string(yamlData), nil
}
