package config

import "bytes"

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, generates a minimal commented template.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

render:
  # Add a language class to code fences that do not name one
  detect_language: false

export:
  # Output format: html, document, or text
  format: html
  # Document title (defaults to the first heading)
  # title: ""
  lang: en
  # stylesheet: style.css
  # Wrap plain text at this width (0 = no wrapping)
  width: 0

watch:
  # How long to wait for edits to settle before re-rendering
  debounce: 250ms

check:
  # Report format: text or json
  format: text
  # Fail on warnings and infos, not just errors
  strict: false

convert:
  # Markdown flavor: commonmark or gfm
  flavor: commonmark

# File patterns to ignore (glob patterns)
# ignore:
#   - "drafts/**"
`)

	return buf.Bytes()
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# hrml configuration
# See: https://github.com/owencmcgrath/hrml`
}
