package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/owencmcgrath/hrml/pkg/config"
	"github.com/owencmcgrath/hrml/pkg/export"
)

// maxWidth bounds export.width; anything wider is almost certainly a typo.
const maxWidth = 1000

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "export.format").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err joins every validation error, or returns nil when there are none.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// Validate checks a configuration for errors and warnings. Empty fields are
// treated as unset and pass.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Export.Format != "" {
		if _, err := export.ParseFormat(cfg.Export.Format); err != nil {
			result.addError("export.format", cfg.Export.Format, err.Error())
		}
	}

	if cfg.Export.Width < 0 {
		result.addError("export.width", cfg.Export.Width, "width must be >= 0 (0 disables wrapping)")
	} else if cfg.Export.Width > maxWidth {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "export.width",
			Value:   cfg.Export.Width,
			Message: fmt.Sprintf("width %d is unusually large", cfg.Export.Width),
		})
	}

	if cfg.Export.Stylesheet != "" && cfg.Export.Format != "" && cfg.Export.Format != string(export.FormatDocument) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "export.stylesheet",
			Value:   cfg.Export.Stylesheet,
			Message: "stylesheet only applies to the document format",
		})
	}

	if cfg.Watch.Debounce < 0 {
		result.addError("watch.debounce", cfg.Watch.Debounce, "debounce must be positive")
	}

	if cfg.Check.Format != "" && !cfg.Check.Format.IsValid() {
		result.addError("check.format", cfg.Check.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, json", cfg.Check.Format))
	}

	if cfg.Convert.Flavor != "" && !knownFlavors[cfg.Convert.Flavor] {
		result.addError("convert.flavor", cfg.Convert.Flavor,
			fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Convert.Flavor))
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateIgnorePatterns(cfg, result)

	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

// validateIgnorePatterns checks that ignore patterns compile with the same
// glob syntax the runner uses.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}
