package reporter

import (
	"io"
	"os"
)

const bufWriterSize = 64 << 10

// Options configures a reporter.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the offending source line under each diagnostic.
	ShowContext bool

	// ShowSummary ends text output with a one-line summary.
	ShowSummary bool

	// DetailedSummary replaces the one-line summary with a full breakdown.
	DetailedSummary bool

	// Compact writes JSON on a single line.
	Compact bool

	// WorkingDir makes reported paths relative when set.
	WorkingDir string
}

// DefaultOptions returns text output to stdout with context and summary.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
	}
}
