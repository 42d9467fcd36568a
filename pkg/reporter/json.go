package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/owencmcgrath/hrml/pkg/runner"
)

// jsonVersion is the schema version of the JSON report.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Words       int              `json:"words"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
	Words           int            `json:"words"`
}

// JSONReporter writes one JSON document per run.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	out := newJSONOutput(result, r.opts.WorkingDir)

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return out.Summary.TotalIssues, nil
}

func newJSONOutput(result *runner.Result, workDir string) *JSONOutput {
	out := &JSONOutput{
		Version: jsonVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}},
	}
	if result == nil {
		return out
	}

	stats := result.Stats
	out.Summary.FilesChecked = stats.FilesProcessed
	out.Summary.FilesWithIssues = stats.FilesWithIssues
	out.Summary.FilesErrored = stats.FilesErrored
	out.Summary.TotalIssues = stats.DiagnosticsTotal
	out.Summary.Words = stats.Words
	for sev, n := range stats.DiagnosticsBySeverity {
		out.Summary.BySeverity[string(sev)] = n
	}

	for _, file := range result.Files {
		out.Files = append(out.Files, newJSONFileResult(file, workDir))
	}
	return out
}

func newJSONFileResult(file runner.FileOutcome, workDir string) JSONFileResult {
	res := JSONFileResult{
		Path:        displayPath(file.Path, workDir),
		Diagnostics: []JSONDiagnostic{},
		Words:       file.Stats.Words,
	}
	if file.Error != nil {
		res.Error = file.Error.Error()
	}
	for _, d := range file.Diagnostics() {
		res.Diagnostics = append(res.Diagnostics, JSONDiagnostic{
			Code:     d.Code,
			Severity: string(d.Severity),
			Message:  d.Message,
			Line:     d.Line,
			Column:   d.Column,
		})
	}
	return res
}
