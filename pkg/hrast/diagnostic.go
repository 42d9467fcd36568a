package hrast

import "fmt"

// Severity indicates how serious a diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic codes for every anomaly the transpiler degrades on.
const (
	CodeHeadingClamped    = "heading-level-clamped"
	CodeUnterminatedFence = "unterminated-fence"
	CodeUnterminatedSpan  = "unterminated-span"
	CodeStrayCloser       = "stray-closer"
	CodeMalformedLink     = "malformed-link"
	CodeUnsafeURL         = "unsafe-url"
)

// Diagnostic records a piece of markup that was rendered on a best-effort
// basis. Diagnostics never change the output; they only describe it.
type Diagnostic struct {
	// Code is one of the Code* constants.
	Code string

	// Severity is derived from Code by NewDiagnostic.
	Severity Severity

	// Message is the human-readable description.
	Message string

	// Line is the 1-based source line.
	Line int

	// Column is the 1-based byte column within the line, or 0 when the whole
	// line is meant.
	Column int
}

// NewDiagnostic builds a diagnostic with the default severity for code.
func NewDiagnostic(code string, line, column int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: DefaultSeverity(code),
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   column,
	}
}

// DefaultSeverity returns the severity a diagnostic code carries.
func DefaultSeverity(code string) Severity {
	switch code {
	case CodeUnsafeURL:
		return SeverityError
	case CodeHeadingClamped:
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

// String formats the diagnostic as "line:col: message (code)".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s (%s)", d.Line, d.Column, d.Message, d.Code)
}
