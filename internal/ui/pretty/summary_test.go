package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/owencmcgrath/hrml/internal/ui/pretty"
	"github.com/owencmcgrath/hrml/pkg/hrast"
	"github.com/owencmcgrath/hrml/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:   10,
		FilesWithIssues:  3,
		DiagnosticsTotal: 15,
		DiagnosticsBySeverity: map[hrast.Severity]int{
			hrast.SeverityError:   5,
			hrast.SeverityWarning: 10,
		},
		Words: 420,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:     10")
	assert.Contains(t, result, "Files with issues: 3")
	assert.Contains(t, result, "Words:             420")
	assert.Contains(t, result, "Total issues:      15")
	assert.Contains(t, result, "Errors:          5")
	assert.Contains(t, result, "Warnings:        10")
	assert.NotContains(t, result, "Info:")
	assert.Contains(t, result, "Check failed with errors")
}

func TestFormatSummary_Status(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 5, DiagnosticsBySeverity: map[hrast.Severity]int{}},
			want:  "Check passed",
		},
		{
			name: "warnings",
			stats: runner.Stats{
				FilesProcessed: 1, FilesWithIssues: 1, DiagnosticsTotal: 2,
				DiagnosticsBySeverity: map[hrast.Severity]int{hrast.SeverityWarning: 2},
			},
			want: "Check completed with warnings",
		},
		{
			name: "info only",
			stats: runner.Stats{
				FilesProcessed: 1, FilesWithIssues: 1, DiagnosticsTotal: 1,
				DiagnosticsBySeverity: map[hrast.Severity]int{hrast.SeverityInfo: 1},
			},
			want: "Check completed with warnings",
		},
		{
			name:  "unreadable file",
			stats: runner.Stats{FilesErrored: 1, DiagnosticsBySeverity: map[hrast.Severity]int{}},
			want:  "Check failed with errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, styles.FormatSummary(tt.stats), tt.want)
		})
	}
}

func TestFormatSummary_NoIssuesOmitsFileLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesProcessed: 2, DiagnosticsBySeverity: map[hrast.Severity]int{}})

	assert.NotContains(t, result, "Files with issues:")
	assert.NotContains(t, result, "Errors:")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "no issues",
			stats: runner.Stats{FilesProcessed: 3, DiagnosticsBySeverity: map[hrast.Severity]int{}},
			want:  "No issues found (3 files checked)\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesProcessed: 1, DiagnosticsBySeverity: map[hrast.Severity]int{}},
			want:  "No issues found (1 file checked)\n",
		},
		{
			name: "mixed",
			stats: runner.Stats{
				FilesProcessed: 4, FilesWithIssues: 2, DiagnosticsTotal: 5,
				DiagnosticsBySeverity: map[hrast.Severity]int{
					hrast.SeverityError:   1,
					hrast.SeverityWarning: 3,
					hrast.SeverityInfo:    1,
				},
			},
			want: "5 issues (1 error, 3 warnings, 1 info) in 2 files\n",
		},
		{
			name: "single issue",
			stats: runner.Stats{
				FilesProcessed: 1, FilesWithIssues: 1, DiagnosticsTotal: 1,
				DiagnosticsBySeverity: map[hrast.Severity]int{hrast.SeverityWarning: 1},
			},
			want: "1 issue (1 warning) in 1 file\n",
		},
		{
			name:  "unreadable",
			stats: runner.Stats{FilesProcessed: 2, FilesErrored: 1, DiagnosticsBySeverity: map[hrast.Severity]int{}},
			want:  "No issues found (2 files checked), 1 file unreadable\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
