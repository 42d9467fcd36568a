// Package render turns an HRML document tree into an HTML fragment.
//
// Every block is written on its own line. Text and attribute values are
// escaped exactly once. Link and image targets that could run script are
// neutralized and reported.
package render

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/owencmcgrath/hrml/pkg/hrast"
)

// LanguageDetector guesses the language of an unlabeled code block. It
// returns "" when it has no answer.
type LanguageDetector func(code string) string

// Option configures a Renderer.
type Option func(*Renderer)

// WithLanguageDetector sets the detector consulted for code blocks that
// carry no language hint.
func WithLanguageDetector(detect LanguageDetector) Option {
	return func(r *Renderer) {
		r.detect = detect
	}
}

// Renderer writes HTML for document trees. It holds no per-call state and
// is safe for concurrent use.
type Renderer struct {
	detect LanguageDetector
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Output is the result of rendering one document.
type Output struct {
	// HTML is the rendered fragment.
	HTML string

	// Diagnostics lists the URLs that were neutralized.
	Diagnostics []hrast.Diagnostic
}

// Render renders doc with the default renderer and returns the HTML.
func Render(doc *hrast.Node) string {
	return New().Render(doc).HTML
}

// Render renders doc.
func (r *Renderer) Render(doc *hrast.Node) Output {
	if doc == nil {
		return Output{}
	}

	var buf bytes.Buffer
	st := &state{
		Renderer: r,
		w:        bufio.NewWriter(&buf),
	}

	if doc.Kind == hrast.NodeDocument {
		st.blocks(doc)
	} else {
		st.block(doc)
	}

	//nolint:errcheck // writes to a bytes.Buffer cannot fail
	st.w.Flush()

	return Output{HTML: buf.String(), Diagnostics: st.diags}
}

// state carries the writer and diagnostics of a single Render call.
type state struct {
	*Renderer

	w     util.BufWriter
	diags []hrast.Diagnostic
}

func (s *state) blocks(parent *hrast.Node) {
	for child := parent.FirstChild; child != nil; child = child.Next {
		s.block(child)
	}
}

func (s *state) block(n *hrast.Node) {
	switch n.Kind {
	case hrast.NodeHeading:
		tag := "h" + strconv.Itoa(headingLevel(n))
		s.open(tag)
		s.inlines(n)
		s.closeLine(tag)

	case hrast.NodeParagraph:
		s.open("p")
		s.inlines(n)
		s.closeLine("p")

	case hrast.NodeList:
		tag := "ul"
		if n.Block != nil && n.Block.List != nil && n.Block.List.Kind == hrast.ListOrdered {
			tag = "ol"
		}
		s.openLine(tag)
		for item := n.FirstChild; item != nil; item = item.Next {
			s.open("li")
			s.inlines(item)
			s.closeLine("li")
		}
		s.closeLine(tag)

	case hrast.NodeListItem:
		s.open("li")
		s.inlines(n)
		s.closeLine("li")

	case hrast.NodeBlockQuote:
		s.openLine("blockquote")
		s.blocks(n)
		s.closeLine("blockquote")

	case hrast.NodeCodeBlock:
		s.codeBlock(n)

	case hrast.NodeHorizontalRule:
		_, _ = s.w.WriteString("<hr>\n")

	case hrast.NodeLinkBlock:
		s.anchor(n, n.Block.Link)
		_ = s.w.WriteByte('\n')

	case hrast.NodeImageBlock:
		s.image(n, n.Block.Link)
		_ = s.w.WriteByte('\n')

	case hrast.NodeDocument:
		s.blocks(n)

	default:
		// Inline content handed in as a block renders inside a paragraph.
		s.open("p")
		s.inline(n)
		s.closeLine("p")
	}
}

func (s *state) codeBlock(n *hrast.Node) {
	attrs := n.Block.CodeBlock
	lang := attrs.Language
	if lang == "" && s.detect != nil {
		lang = s.detect(attrs.Content)
	}

	_, _ = s.w.WriteString("<pre><code")
	if lang != "" {
		_, _ = s.w.WriteString(` class="language-`)
		s.escape(lang)
		_ = s.w.WriteByte('"')
	}
	_ = s.w.WriteByte('>')
	s.escape(attrs.Content)
	_, _ = s.w.WriteString("</code></pre>\n")
}

func (s *state) inlines(parent *hrast.Node) {
	for child := parent.FirstChild; child != nil; child = child.Next {
		s.inline(child)
	}
}

func (s *state) inline(n *hrast.Node) {
	switch n.Kind {
	case hrast.NodeText:
		s.escape(n.Text())

	case hrast.NodeBold:
		s.open("strong")
		s.inlines(n)
		s.close("strong")

	case hrast.NodeItalic:
		s.open("em")
		s.inlines(n)
		s.close("em")

	case hrast.NodeUnderline:
		s.open("u")
		s.inlines(n)
		s.close("u")

	case hrast.NodeLink:
		s.anchor(n, n.Inline.Link)

	case hrast.NodeImage:
		s.image(n, n.Inline.Link)

	default:
		s.inlines(n)
	}
}

func (s *state) anchor(n *hrast.Node, link *hrast.LinkAttrs) {
	_, _ = s.w.WriteString(`<a href="`)
	if s.safe(n, link.Destination) {
		s.url(link.Destination)
	} else {
		_ = s.w.WriteByte('#')
	}
	_, _ = s.w.WriteString(`">`)
	s.escape(link.Text)
	_, _ = s.w.WriteString("</a>")
}

func (s *state) image(n *hrast.Node, link *hrast.LinkAttrs) {
	_, _ = s.w.WriteString(`<img src="`)
	if s.safe(n, link.Destination) {
		s.url(link.Destination)
	}
	_, _ = s.w.WriteString(`" alt="`)
	s.escape(link.Text)
	_, _ = s.w.WriteString(`">`)
}

// safe reports whether dest may be emitted and records a diagnostic when
// it may not.
func (s *state) safe(n *hrast.Node, dest string) bool {
	if !IsDangerousURL(dest) {
		return true
	}
	s.diags = append(s.diags, hrast.NewDiagnostic(hrast.CodeUnsafeURL, n.Line, n.Column,
		"url %q was removed", dest))
	return false
}

func (s *state) url(dest string) {
	_, _ = s.w.Write(util.EscapeHTML(util.URLEscape([]byte(validUTF8(dest)), false)))
}

func (s *state) escape(text string) {
	_, _ = s.w.Write(util.EscapeHTML([]byte(validUTF8(text))))
}

// validUTF8 replaces each run of invalid bytes with U+FFFD.
func validUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "\uFFFD")
}

func (s *state) open(tag string) {
	_ = s.w.WriteByte('<')
	_, _ = s.w.WriteString(tag)
	_ = s.w.WriteByte('>')
}

func (s *state) openLine(tag string) {
	s.open(tag)
	_ = s.w.WriteByte('\n')
}

func (s *state) close(tag string) {
	_, _ = s.w.WriteString("</")
	_, _ = s.w.WriteString(tag)
	_ = s.w.WriteByte('>')
}

func (s *state) closeLine(tag string) {
	s.close(tag)
	_ = s.w.WriteByte('\n')
}

func headingLevel(n *hrast.Node) int {
	level := 1
	if n.Block != nil {
		level = n.Block.HeadingLevel
	}
	switch {
	case level < 1:
		return 1
	case level > hrast.MaxHeadingLevel:
		return hrast.MaxHeadingLevel
	default:
		return level
	}
}

// IsDangerousURL reports whether dest uses a scheme that can execute
// script when followed.
func IsDangerousURL(dest string) bool {
	return html.IsDangerousURL([]byte(dest))
}
