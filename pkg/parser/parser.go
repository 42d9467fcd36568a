// Package parser builds the HRML document tree from classified lines.
//
// The block parser is a single forward pass that keeps at most one open
// paragraph, one open list and one stack of open quotes. Text gathered for a
// heading, paragraph or list item is handed to the inline parser, which
// resolves spans, links and images with an explicit frame stack.
//
// Parsing never fails. Malformed markup degrades to literal text and is
// recorded as a diagnostic.
package parser

import (
	"sort"
	"strings"

	"github.com/owencmcgrath/hrml/pkg/hrast"
	"github.com/owencmcgrath/hrml/pkg/lexer"
)

// Parse builds the document tree for sanitized HRML source.
func Parse(source string) (*hrast.Node, []hrast.Diagnostic) {
	return ParseLines(lexer.Lex(source))
}

// ParseLines builds the document tree from lines produced by lexer.Lex.
func ParseLines(lines []lexer.Line) (*hrast.Node, []hrast.Diagnostic) {
	p := &blockParser{
		lines: lines,
		doc:   hrast.NewDocument(),
	}
	p.run()

	sort.SliceStable(p.diags, func(i, j int) bool {
		a, b := p.diags[i], p.diags[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	return p.doc, p.diags
}

// quoteFrame is one open quote container and its pending paragraph.
type quoteFrame struct {
	node *hrast.Node
	para *inlineText
}

type blockParser struct {
	lines []lexer.Line
	pos   int
	doc   *hrast.Node
	diags []hrast.Diagnostic

	para   *inlineText
	list   *hrast.Node
	quotes []*quoteFrame
}

func (p *blockParser) run() {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++

		switch line.Kind {
		case lexer.KindBlank:
			p.closeAll()

		case lexer.KindHeading:
			p.closeAll()
			p.heading(line)

		case lexer.KindUnorderedItem, lexer.KindOrderedItem:
			p.closeParagraph()
			p.closeQuotes()
			p.listItem(line)

		case lexer.KindQuote:
			p.closeParagraph()
			p.closeList()
			p.quote(line)

		case lexer.KindFenceOpen:
			p.closeAll()
			p.codeBlock(line)

		case lexer.KindRule:
			if p.closerFollows(lexer.TokenBoldClose) {
				p.text(line)
				continue
			}
			p.closeAll()
			p.leaf(hrast.NewNode(hrast.NodeHorizontalRule), line)

		case lexer.KindLinkBlock:
			p.closeAll()
			p.leaf(hrast.NewLinkBlock(hrast.NodeLinkBlock, line.Link.Text, line.Link.URL), line)

		case lexer.KindImageBlock:
			p.closeAll()
			p.leaf(hrast.NewLinkBlock(hrast.NodeImageBlock, line.Link.Text, line.Link.URL), line)

		default:
			// Text, and fence lines that reach here without an open fence.
			if line.Text == "" {
				line.Text = strings.TrimSpace(line.Raw)
				line.Column = 1
			}
			p.text(line)
		}
	}

	p.closeAll()
}

// text adds a plain line to the document-level paragraph.
func (p *blockParser) text(line lexer.Line) {
	p.closeList()
	p.closeQuotes()

	if p.para == nil {
		p.para = &inlineText{}
	}
	p.para.add(line)
}

// closerFollows reports whether closer appears in the plain lines that
// directly follow the current line, up to the end of the block.
func (p *blockParser) closerFollows(closer string) bool {
	for i := p.pos; i < len(p.lines) && p.lines[i].Kind == lexer.KindText; i++ {
		if strings.Contains(p.lines[i].Text, closer) {
			return true
		}
	}
	return false
}

func (p *blockParser) heading(line lexer.Line) {
	node := hrast.NewHeading(line.Level)
	node.Line = line.Number
	node.Column = line.Column

	if line.Clamped() {
		p.diags = append(p.diags, hrast.NewDiagnostic(hrast.CodeHeadingClamped, line.Number, 0,
			"heading level %d clamped to %d", line.Count, line.Level))
	}

	p.diags = append(p.diags, parseInline(node, newInlineText(line))...)
	hrast.AppendChild(p.doc, node)
}

func (p *blockParser) listItem(line lexer.Line) {
	kind := hrast.ListUnordered
	if line.Kind == lexer.KindOrderedItem {
		kind = hrast.ListOrdered
	}

	if p.list == nil || p.list.Block.List.Kind != kind {
		p.list = hrast.NewList(kind)
		p.list.Line = line.Number
		hrast.AppendChild(p.doc, p.list)
	}

	item := hrast.NewNode(hrast.NodeListItem)
	item.Line = line.Number
	item.Column = line.Column

	p.diags = append(p.diags, parseInline(item, newInlineText(line))...)
	hrast.AppendChild(p.list, item)
}

// quote routes a quote line to the container at its depth, closing deeper
// containers and opening any missing shallower ones.
func (p *blockParser) quote(line lexer.Line) {
	depth := line.Level

	for len(p.quotes) > depth {
		p.popQuote()
	}

	for len(p.quotes) < depth {
		parent := p.doc
		if len(p.quotes) > 0 {
			outer := p.quotes[len(p.quotes)-1]
			p.flushQuoteParagraph(outer)
			parent = outer.node
		}

		node := hrast.NewBlockQuote(len(p.quotes) + 1)
		node.Line = line.Number
		hrast.AppendChild(parent, node)
		p.quotes = append(p.quotes, &quoteFrame{node: node})
	}

	frame := p.quotes[depth-1]
	if line.Text == "" {
		p.flushQuoteParagraph(frame)
		return
	}

	if frame.para == nil {
		frame.para = &inlineText{}
	}
	frame.para.add(line)
}

// codeBlock collects raw lines up to the closing fence or end of input.
func (p *blockParser) codeBlock(open lexer.Line) {
	var content []string
	closed := false

	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++

		if line.Kind == lexer.KindFenceClose {
			closed = true
			break
		}
		content = append(content, line.Raw)
	}

	if !closed {
		p.diags = append(p.diags, hrast.NewDiagnostic(hrast.CodeUnterminatedFence, open.Number, 0,
			"code fence is never closed with %q", lexer.TokenFenceClose))
	}

	node := hrast.NewCodeBlock(open.Lang, strings.Join(content, "\n"), closed)
	node.Line = open.Number
	hrast.AppendChild(p.doc, node)
}

func (p *blockParser) leaf(node *hrast.Node, line lexer.Line) {
	node.Line = line.Number
	node.Column = line.Column
	hrast.AppendChild(p.doc, node)
}

func (p *blockParser) emitParagraph(parent *hrast.Node, src *inlineText) {
	node := hrast.NewNode(hrast.NodeParagraph)
	node.Line, node.Column = src.position(0)

	p.diags = append(p.diags, parseInline(node, src)...)
	hrast.AppendChild(parent, node)
}

func (p *blockParser) closeParagraph() {
	if p.para == nil {
		return
	}
	p.emitParagraph(p.doc, p.para)
	p.para = nil
}

func (p *blockParser) closeList() {
	p.list = nil
}

func (p *blockParser) flushQuoteParagraph(frame *quoteFrame) {
	if frame.para == nil {
		return
	}
	p.emitParagraph(frame.node, frame.para)
	frame.para = nil
}

func (p *blockParser) popQuote() {
	frame := p.quotes[len(p.quotes)-1]
	p.flushQuoteParagraph(frame)
	p.quotes = p.quotes[:len(p.quotes)-1]
}

func (p *blockParser) closeQuotes() {
	for len(p.quotes) > 0 {
		p.popQuote()
	}
}

func (p *blockParser) closeAll() {
	p.closeParagraph()
	p.closeList()
	p.closeQuotes()
}
