// Package config defines core configuration types for hrml.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import "time"

// OutputFormat specifies the output format for check diagnostics.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor accepted by convert.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultDebounce is how long watch waits for edits to settle.
const DefaultDebounce = 250 * time.Millisecond

// RenderConfig controls transpilation.
type RenderConfig struct {
	// DetectLanguage infers a language class for code fences that have none.
	DetectLanguage bool `yaml:"detect_language"`
}

// ExportConfig controls how rendered output is written.
type ExportConfig struct {
	// Format is "html", "document" or "text".
	Format string `yaml:"format"`

	// Title of standalone documents. Empty uses the first heading.
	Title string `yaml:"title,omitempty"`

	// Lang is the document language attribute.
	Lang string `yaml:"lang"`

	// Stylesheet is an optional stylesheet URL for standalone documents.
	Stylesheet string `yaml:"stylesheet,omitempty"`

	// Width wraps plain text output; 0 disables wrapping.
	Width int `yaml:"width"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// CheckConfig controls the check command.
type CheckConfig struct {
	Format OutputFormat `yaml:"format"`

	// Strict makes any diagnostic fail the run, not just errors.
	Strict bool `yaml:"strict"`
}

// ConvertConfig controls Markdown conversion.
type ConvertConfig struct {
	Flavor Flavor `yaml:"flavor"`
}

// Config is the root configuration structure for hrml.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Export  ExportConfig  `yaml:"export"`
	Watch   WatchConfig   `yaml:"watch"`
	Check   CheckConfig   `yaml:"check"`
	Convert ConvertConfig `yaml:"convert"`

	// Ignore contains glob patterns for files check should skip.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Render: RenderConfig{DetectLanguage: false},
		Export: ExportConfig{
			Format: "html",
			Lang:   "en",
		},
		Watch: WatchConfig{Debounce: DefaultDebounce},
		Check: CheckConfig{Format: FormatText},
		Convert: ConvertConfig{
			Flavor: FlavorCommonMark,
		},
		Jobs: 0, // 0 means use GOMAXPROCS
	}
}
