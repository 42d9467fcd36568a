package parser

import (
	"sort"
	"strings"

	"github.com/owencmcgrath/hrml/pkg/hrast"
	"github.com/owencmcgrath/hrml/pkg/lexer"
)

// segment maps a run of joined inline text back to its source line.
type segment struct {
	offset int
	line   int
	column int
}

// inlineText accumulates the text of one block. Lines are joined with a
// single space and every line's origin is remembered for diagnostics.
type inlineText struct {
	buf      strings.Builder
	segments []segment
}

// add appends the text of a classified line.
func (s *inlineText) add(line lexer.Line) {
	if len(s.segments) > 0 {
		s.buf.WriteByte(' ')
	}
	s.segments = append(s.segments, segment{
		offset: s.buf.Len(),
		line:   line.Number,
		column: line.Column,
	})
	s.buf.WriteString(line.Text)
}

func (s *inlineText) String() string {
	return s.buf.String()
}

// position converts an offset in the joined text to a line and column.
func (s *inlineText) position(offset int) (int, int) {
	if len(s.segments) == 0 {
		return 0, 0
	}

	i := sort.Search(len(s.segments), func(i int) bool {
		return s.segments[i].offset > offset
	}) - 1
	if i < 0 {
		i = 0
	}

	seg := s.segments[i]
	return seg.line, seg.column + offset - seg.offset
}

func newInlineText(line lexer.Line) *inlineText {
	s := &inlineText{}
	s.add(line)
	return s
}

// spanKinds maps paired openers to the node kind they produce.
var spanKinds = map[string]hrast.NodeKind{
	lexer.TokenBold:      hrast.NodeBold,
	lexer.TokenItalic:    hrast.NodeItalic,
	lexer.TokenUnderline: hrast.NodeUnderline,
}

// closers maps paired closers to the opener they match.
var closers = map[string]string{
	lexer.TokenBoldClose:      lexer.TokenBold,
	lexer.TokenItalicClose:    lexer.TokenItalic,
	lexer.TokenUnderlineClose: lexer.TokenUnderline,
}

// frame is an open span on the inline stack. The bottom frame is the block
// being filled and has no opener.
type frame struct {
	node   *hrast.Node
	opener string
	lead   string
	offset int
}

// inlineParser is a single left-to-right scan over one block's text.
type inlineParser struct {
	src     *inlineText
	text    string
	stack   []*frame
	links   *lexer.LinkScanner
	pending strings.Builder
	diags   []hrast.Diagnostic
}

// parseInline fills parent with the inline tree for src.
func parseInline(parent *hrast.Node, src *inlineText) []hrast.Diagnostic {
	text := src.String()
	p := &inlineParser{
		src:   src,
		text:  text,
		stack: []*frame{{node: parent}},
		links: lexer.NewLinkScanner(text),
	}
	p.run()
	return p.diags
}

// ParseInline parses a single line of inline markup into parent and returns
// the diagnostics recorded on the way. Positions are reported as line 1.
func ParseInline(parent *hrast.Node, text string) []hrast.Diagnostic {
	return parseInline(parent, newInlineText(lexer.Line{Number: 1, Column: 1, Text: text}))
}

func (p *inlineParser) run() {
	text := p.text

	for i := 0; i < len(text); {
		if i+2 <= len(text) {
			tok := text[i : i+2]

			if kind, ok := spanKinds[tok]; ok {
				i = p.open(tok, kind, i)
				continue
			}

			if opener, ok := closers[tok]; ok {
				if !p.close(opener) {
					p.literal(tok, i, hrast.CodeStrayCloser, "closer %q has no matching %q", tok, opener)
				}
				i += len(tok)
				continue
			}

			if tok == lexer.TokenLink || tok == lexer.TokenImage {
				if n, ok := p.link(tok, i); ok {
					i += n
					continue
				}
				p.literal(tok, i, hrast.CodeMalformedLink, "%q is not followed by [text] gh [url] %s", tok, lexer.CloserFor(tok))
				i += len(tok)
				continue
			}
		}

		p.pending.WriteByte(text[i])
		i++
	}

	p.finish()
}

// top returns the innermost open frame.
func (p *inlineParser) top() *frame {
	return p.stack[len(p.stack)-1]
}

// flush moves pending literal text into the innermost frame.
func (p *inlineParser) flush() {
	if p.pending.Len() == 0 {
		return
	}
	hrast.AppendText(p.top().node, p.pending.String())
	p.pending.Reset()
}

// open pushes a span frame and returns the offset after the opener and any
// whitespace following it.
func (p *inlineParser) open(tok string, kind hrast.NodeKind, offset int) int {
	p.flush()

	end := offset + len(tok)
	for end < len(p.text) && lexer.IsSpace(p.text[end]) {
		end++
	}

	node := hrast.NewNode(kind)
	node.Line, node.Column = p.src.position(offset)

	p.stack = append(p.stack, &frame{
		node:   node,
		opener: tok,
		lead:   p.text[offset+len(tok) : end],
		offset: offset,
	})

	return end
}

// close pops the innermost frame when it was opened by opener.
func (p *inlineParser) close(opener string) bool {
	if len(p.stack) < 2 || p.top().opener != opener {
		return false
	}

	p.flush()

	f := p.top()
	p.stack = p.stack[:len(p.stack)-1]

	trimTrailingSpace(f.node)
	hrast.AppendChild(p.top().node, f.node)

	return true
}

// link recognizes a link or image construct at offset.
func (p *inlineParser) link(tok string, offset int) (int, bool) {
	parts, n, ok := p.links.Scan(offset)
	if !ok {
		return 0, false
	}

	p.flush()

	kind := hrast.NodeLink
	if tok == lexer.TokenImage {
		kind = hrast.NodeImage
	}

	node := hrast.NewLink(kind, parts.Text, parts.URL)
	node.Line, node.Column = p.src.position(offset)
	hrast.AppendChild(p.top().node, node)

	return n, true
}

// literal keeps tok as text. A diagnostic is recorded only when the token
// stands alone as a word, so ordinary words that happen to contain a token
// ("adjust", "just") stay quiet.
func (p *inlineParser) literal(tok string, offset int, code, format string, args ...any) {
	p.pending.WriteString(tok)
	if p.standalone(offset, len(tok)) {
		p.report(code, offset, format, args...)
	}
}

// finish flushes frames still open at the end of the block as literal
// opener text followed by their content. Frames are unwound bottom up in a
// single pass.
func (p *inlineParser) finish() {
	p.flush()
	if len(p.stack) < 2 {
		return
	}

	parent := p.stack[0].node
	var literal strings.Builder

	for _, f := range p.stack[1:] {
		literal.WriteString(f.opener)
		literal.WriteString(f.lead)

		for child := f.node.FirstChild; child != nil; {
			next := child.Next
			hrast.RemoveChild(f.node, child)
			if child.Kind == hrast.NodeText {
				literal.WriteString(child.Text())
			} else {
				hrast.AppendText(parent, literal.String())
				literal.Reset()
				hrast.AppendChild(parent, child)
			}
			child = next
		}

		if p.standalone(f.offset, len(f.opener)) {
			p.report(hrast.CodeUnterminatedSpan, f.offset, "%q is never closed with %q", f.opener, lexer.CloserFor(f.opener))
		}
	}

	hrast.AppendText(parent, literal.String())
	p.stack = p.stack[:1]
}

func (p *inlineParser) standalone(offset, n int) bool {
	before := offset == 0 || lexer.IsSpace(p.text[offset-1])
	after := offset+n >= len(p.text) || lexer.IsSpace(p.text[offset+n])
	return before && after
}

func (p *inlineParser) report(code string, offset int, format string, args ...any) {
	line, column := p.src.position(offset)
	p.diags = append(p.diags, hrast.NewDiagnostic(code, line, column, format, args...))
}

// trimTrailingSpace strips whitespace from the end of n's last text child,
// removing the child when nothing is left.
func trimTrailingSpace(n *hrast.Node) {
	last := n.LastChild
	if last == nil || last.Kind != hrast.NodeText {
		return
	}

	last.Inline.Text = strings.TrimRight(last.Inline.Text, " \t\n\v\f\r")
	if last.Inline.Text == "" {
		hrast.RemoveChild(n, last)
	}
}
