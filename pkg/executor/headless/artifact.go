package headless

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/backnav/pkg/types"
)

// ArtifactWriter handles writing replay artifacts
type ArtifactWriter struct {
	outputDir string
}

// NewArtifactWriter creates a new artifact writer
func NewArtifactWriter(outputDir string) *ArtifactWriter {
	return &ArtifactWriter{
		outputDir: outputDir,
	}
}

// OutputDir returns the directory artifacts are written to.
func (w *ArtifactWriter) OutputDir() string {
	return w.outputDir
}

// WriteAll writes every artifact format
func (w *ArtifactWriter) WriteAll(summary *ExecutionSummary) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := w.WriteReplayJSON(summary); err != nil {
		return fmt.Errorf("failed to write replay JSON: %w", err)
	}

	if err := w.WriteSummaryMarkdown(summary); err != nil {
		return fmt.Errorf("failed to write summary markdown: %w", err)
	}

	return nil
}

// WriteReplayJSON writes the full execution summary as JSON
func (w *ArtifactWriter) WriteReplayJSON(summary *ExecutionSummary) error {
	path := filepath.Join(w.outputDir, "replay.json")

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal execution summary: %w", err)
	}

	if writeErr := os.WriteFile(path, data, 0600); writeErr != nil {
		return fmt.Errorf("failed to write replay JSON: %w", writeErr)
	}

	return nil
}

// WriteSummaryMarkdown writes a human-readable markdown summary
func (w *ArtifactWriter) WriteSummaryMarkdown(summary *ExecutionSummary) error {
	path := filepath.Join(w.outputDir, "summary.md")

	var md strings.Builder

	md.WriteString("# Back Navigation Replay\n\n")
	md.WriteString(fmt.Sprintf("**Script:** %s\n\n", summary.Script))
	md.WriteString(fmt.Sprintf("**Run:** %s\n\n", summary.RunID))
	md.WriteString(fmt.Sprintf("**Status:** %s\n\n", summary.Status))
	md.WriteString(fmt.Sprintf("**Started:** %s\n\n", summary.StartTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", summary.Duration))

	if summary.Error != "" {
		md.WriteString(fmt.Sprintf("**Error:** %s\n\n", summary.Error))
	}

	md.WriteString("## Steps\n\n")
	md.WriteString("| # | Step | Outcome | Calls |\n")
	md.WriteString("|---|------|---------|-------|\n")
	for _, step := range summary.Steps {
		outcome := "ok"
		if !step.Passed {
			outcome = "FAILED"
		}
		md.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n",
			step.Index, step.Name, outcome, strings.Join(step.Calls, ", ")))
	}
	md.WriteString("\n")

	if failures := summary.FailedExpectations(); len(failures) > 0 {
		md.WriteString("## Failed Expectations\n\n")
		for _, f := range failures {
			md.WriteString(fmt.Sprintf("- %s\n", f))
		}
		md.WriteString("\n")
	}

	md.WriteString("## Metrics\n\n")
	md.WriteString(fmt.Sprintf("- **Successes:** %d\n", summary.Metrics.Successes))
	md.WriteString(fmt.Sprintf("- **Failures:** %d\n", summary.Metrics.Failures))
	md.WriteString(fmt.Sprintf("- **Edges:** %d\n", summary.Metrics.Edges))
	md.WriteString(fmt.Sprintf("- **Fallbacks:** %d\n", summary.Metrics.Fallbacks))

	if writeErr := os.WriteFile(path, []byte(md.String()), 0600); writeErr != nil {
		return fmt.Errorf("failed to write summary markdown: %w", writeErr)
	}

	return nil
}

// ExecutionSummary contains a complete summary of one replay
type ExecutionSummary struct {
	RunID     string           `json:"run_id"`
	Script    string           `json:"script"`
	Status    string           `json:"status"`
	Error     string           `json:"error,omitempty"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Duration  time.Duration    `json:"duration"`
	Steps     []StepResult     `json:"steps"`
	Records   []types.Record   `json:"records"`
	Metrics   ExecutionMetrics `json:"metrics"`
}

// StepResult is the outcome of one step
type StepResult struct {
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Action   Action   `json:"action"`
	Handled  *bool    `json:"handled,omitempty"`
	Fallback bool     `json:"fallback"`
	Armed    bool     `json:"armed"`
	Calls    []string `json:"calls"`
	Records  []string `json:"records,omitempty"`
	Consumer string   `json:"consumer,omitempty"`
	Error    string   `json:"error,omitempty"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
}

// ExecutionMetrics contains dispatch totals for the run
type ExecutionMetrics struct {
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
	Edges     int `json:"edges"`
	Fallbacks int `json:"fallbacks"`
}

// FailedExpectations lists every failed expectation prefixed by its step.
func (s *ExecutionSummary) FailedExpectations() []string {
	var out []string
	for _, step := range s.Steps {
		for _, f := range step.Failures {
			out = append(out, fmt.Sprintf("step %d (%s): %s", step.Index, step.Name, f))
		}
	}
	return out
}

// Succeeded reports whether the run finished with every expectation met.
func (s *ExecutionSummary) Succeeded() bool {
	return s.Status == statusSuccess
}
