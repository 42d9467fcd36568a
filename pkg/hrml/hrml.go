// Package hrml is the entry point of the HRML transpiler.
//
// Render is a pure function from markup text to an HTML fragment. It never
// fails: malformed markup degrades to literal text. Callers that want to
// know what was degraded use a Transpiler and inspect Result.Diagnostics.
//
// Input is expected to be sanitized (see Sanitize) before it is rendered.
package hrml

import (
	"sort"
	"strings"

	"github.com/owencmcgrath/hrml/pkg/hrast"
	"github.com/owencmcgrath/hrml/pkg/langdetect"
	"github.com/owencmcgrath/hrml/pkg/parser"
	"github.com/owencmcgrath/hrml/pkg/render"
)

// Option configures a Transpiler.
type Option func(*options)

type options struct {
	detectLanguage bool
	detector       render.LanguageDetector
}

// WithLanguageDetection labels code blocks that carry no language hint with
// a detected language.
func WithLanguageDetection(enabled bool) Option {
	return func(o *options) {
		o.detectLanguage = enabled
	}
}

// WithLanguageDetector replaces the detector used by WithLanguageDetection.
func WithLanguageDetector(detect render.LanguageDetector) Option {
	return func(o *options) {
		o.detector = detect
	}
}

// Transpiler is the render context shared by every caller in a process.
// It holds only configuration and is safe for concurrent use.
type Transpiler struct {
	renderer *render.Renderer
}

// New creates a Transpiler.
func New(opts ...Option) *Transpiler {
	o := options{detector: langdetect.Detect}
	for _, opt := range opts {
		opt(&o)
	}

	var renderOpts []render.Option
	if o.detectLanguage && o.detector != nil {
		renderOpts = append(renderOpts, render.WithLanguageDetector(o.detector))
	}

	return &Transpiler{renderer: render.New(renderOpts...)}
}

var defaultTranspiler = New()

// Render converts markup to an HTML fragment with the default settings.
// Empty or blank input renders as "".
func Render(markup string) string {
	return defaultTranspiler.Render(markup)
}

// Result is the full outcome of one transpilation.
type Result struct {
	// HTML is the rendered fragment.
	HTML string

	// Document is the parsed tree. It is never nil.
	Document *hrast.Node

	// Diagnostics lists every graceful degradation in source order.
	Diagnostics []hrast.Diagnostic
}

// Count returns the number of diagnostics with the given severity.
func (r *Result) Count(severity hrast.Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == severity {
			n++
		}
	}
	return n
}

// Render converts markup to an HTML fragment.
func (t *Transpiler) Render(markup string) string {
	return t.Transpile(markup).HTML
}

// Transpile parses and renders markup.
func (t *Transpiler) Transpile(markup string) *Result {
	if strings.TrimSpace(markup) == "" {
		return &Result{Document: hrast.NewDocument()}
	}

	doc, diags := parser.Parse(markup)
	out := t.renderer.Render(doc)

	diags = append(diags, out.Diagnostics...)
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})

	return &Result{
		HTML:        out.HTML,
		Document:    doc,
		Diagnostics: diags,
	}
}
