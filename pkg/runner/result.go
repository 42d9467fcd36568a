package runner

import (
	"strings"

	"github.com/owencmcgrath/hrml/pkg/hrast"
	"github.com/owencmcgrath/hrml/pkg/hrml"
)

// FileOutcome is the result of transpiling one file.
type FileOutcome struct {
	Path string

	// Result is nil when the file could not be read.
	Result *hrml.Result

	// Source is the sanitized file content.
	Source string

	// Stats holds the word, character and line counts of the source.
	Stats hrml.Stats

	// Error is set if the file could not be processed.
	Error error
}

// Diagnostics returns the file's diagnostics, or nil if it failed.
func (o FileOutcome) Diagnostics() []hrast.Diagnostic {
	if o.Result == nil {
		return nil
	}
	return o.Result.Diagnostics
}

// Line returns the 1-based source line n, or "" when out of range.
func (o FileOutcome) Line(n int) string {
	if n < 1 {
		return ""
	}
	rest := o.Source
	for range n - 1 {
		i := strings.IndexByte(rest, '\n')
		if i < 0 {
			return ""
		}
		rest = rest[i+1:]
	}
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	DiagnosticsTotal      int
	DiagnosticsBySeverity map[hrast.Severity]int

	// Words is the total word count across processed files.
	Words int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any diagnostic with error severity occurred
// or any file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[hrast.SeverityError] > 0 || r.Stats.FilesErrored > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[hrast.Severity]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Words += outcome.Stats.Words

	diags := outcome.Result.Diagnostics
	r.Stats.DiagnosticsTotal += len(diags)
	if len(diags) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, d := range diags {
		r.Stats.DiagnosticsBySeverity[d.Severity]++
	}
}
