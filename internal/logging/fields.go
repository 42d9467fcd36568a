package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"
	FieldBytes      = "bytes"

	// Configuration fields.
	FieldConfig   = "config"
	FieldFormat   = "format"
	FieldFlavor   = "flavor"
	FieldJobs     = "jobs"
	FieldDebounce = "debounce"
	FieldStrict   = "strict"

	// Transpile fields.
	FieldDiagnostics = "diagnostics"
	FieldCode        = "code"
	FieldWords       = "words"
	FieldChanged     = "changed"
	FieldEvent       = "event"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
