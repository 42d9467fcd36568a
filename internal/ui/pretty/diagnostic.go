package pretty

import (
	"fmt"
	"strings"

	"github.com/owencmcgrath/hrml/pkg/hrast"
)

// FormatDiagnostic formats a single diagnostic for terminal output as
// "path:line:col  severity  message  (code)", optionally followed by the
// source line and a caret under the column.
func (s *Styles) FormatDiagnostic(path string, diag hrast.Diagnostic, showContext bool, sourceLine string) string {
	var builder strings.Builder

	column := max(diag.Column, 1)
	location := s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d:%d", diag.Line, column))

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.Code.Render("("+diag.Code+")"),
	))

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev hrast.Severity) string {
	switch sev {
	case hrast.SeverityError:
		return s.Error.Render("error")
	case hrast.SeverityWarning:
		return s.Warning.Render("warning")
	case hrast.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker. A zero
// column means the whole line and gets no caret.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatFileError formats a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("  %s  %s  %s\n", s.FilePath.Render(path), s.Error.Render("error"), s.Message.Render(err.Error()))
}
