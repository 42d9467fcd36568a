package convert

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/owencmcgrath/hrml/pkg/hrast"
)

// mapper converts a goldmark AST into an hrast tree.
type mapper struct {
	source []byte
}

func newMapper(source []byte) *mapper {
	return &mapper{source: source}
}

func (m *mapper) mapDocument(gmDoc ast.Node) *hrast.Node {
	doc := hrast.NewDocument()
	m.mapBlocks(gmDoc, doc)
	return doc
}

func (m *mapper) mapBlocks(gmParent ast.Node, parent *hrast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if parent.Kind == hrast.NodeBlockQuote {
			m.mapQuoted(child, parent)
		} else {
			m.mapBlock(child, parent)
		}
	}
}

// mapBlock maps a top-level block onto the document.
func (m *mapper) mapBlock(gmNode ast.Node, doc *hrast.Node) {
	switch gmn := gmNode.(type) {
	case *ast.Heading:
		node := hrast.NewHeading(gmn.Level)
		m.mapInlines(gmn, node)
		if strings.TrimSpace(node.PlainText()) != "" {
			hrast.AppendChild(doc, node)
		}

	case *ast.Paragraph, *ast.TextBlock:
		m.mapParagraph(gmNode, doc)

	case *ast.List:
		m.mapListItems(gmn, &listBuilder{parent: doc})

	case *ast.Blockquote:
		quote := hrast.NewBlockQuote(1)
		m.mapBlocks(gmn, quote)
		if quote.HasChildren() {
			hrast.AppendChild(doc, quote)
		}

	case *ast.FencedCodeBlock:
		lang := ""
		if fields := strings.Fields(string(gmn.Language(m.source))); len(fields) > 0 {
			lang = fields[0]
		}
		hrast.AppendChild(doc, hrast.NewCodeBlock(lang, m.lines(gmn), true))

	case *ast.CodeBlock:
		hrast.AppendChild(doc, hrast.NewCodeBlock("", m.lines(gmn), true))

	case *ast.HTMLBlock:
		hrast.AppendChild(doc, hrast.NewCodeBlock("html", m.htmlLines(gmn), true))

	case *ast.ThematicBreak:
		hrast.AppendChild(doc, hrast.NewNode(hrast.NodeHorizontalRule))

	case *east.Table:
		m.mapTable(gmn, doc)

	default:
		m.mapBlocks(gmNode, doc)
	}
}

// mapQuoted maps a block nested in a quote. Quotes hold only paragraphs and
// deeper quotes, so everything else is reduced to paragraph text.
func (m *mapper) mapQuoted(gmNode ast.Node, quote *hrast.Node) {
	switch gmn := gmNode.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		para := hrast.NewNode(hrast.NodeParagraph)
		m.mapInlines(gmn, para)
		if para.HasChildren() {
			hrast.AppendChild(quote, para)
		}

	case *ast.Blockquote:
		nested := hrast.NewBlockQuote(quote.Block.QuoteDepth + 1)
		m.mapBlocks(gmn, nested)
		if nested.HasChildren() {
			hrast.AppendChild(quote, nested)
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if code := strings.Join(strings.Fields(m.lines(gmn)), " "); code != "" {
			para := hrast.NewNode(hrast.NodeParagraph)
			hrast.AppendText(para, code)
			hrast.AppendChild(quote, para)
		}

	case *ast.ThematicBreak, *ast.HTMLBlock:
		// Not representable inside a quote.

	case *east.Table:
		m.mapTable(gmn, quote)

	default:
		m.mapBlocks(gmNode, quote)
	}
}

// mapParagraph appends a paragraph. A top-level paragraph holding a single
// link or image becomes a link or image block.
func (m *mapper) mapParagraph(gmNode ast.Node, parent *hrast.Node) {
	para := hrast.NewNode(hrast.NodeParagraph)
	m.mapInlines(gmNode, para)
	if !para.HasChildren() {
		return
	}

	if only := para.FirstChild; only == para.LastChild && only.Inline != nil && only.Inline.Link != nil {
		kind := hrast.NodeLinkBlock
		if only.Kind == hrast.NodeImage {
			kind = hrast.NodeImageBlock
		}
		hrast.AppendChild(parent, hrast.NewLinkBlock(kind, only.Inline.Link.Text, only.Inline.Link.Destination))
		return
	}

	hrast.AppendChild(parent, para)
}

// listBuilder collects items into lists, starting a new list whenever the
// item kind changes or another block interrupts.
type listBuilder struct {
	parent *hrast.Node
	list   *hrast.Node
}

func (b *listBuilder) add(kind hrast.ListKind, item *hrast.Node) {
	if b.list == nil || b.list.Block.List.Kind != kind {
		b.list = hrast.NewList(kind)
		hrast.AppendChild(b.parent, b.list)
	}
	hrast.AppendChild(b.list, item)
}

func (b *listBuilder) interrupt() {
	b.list = nil
}

func (m *mapper) mapListItems(list *ast.List, b *listBuilder) {
	kind := hrast.ListUnordered
	if list.IsOrdered() {
		kind = hrast.ListOrdered
	}

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		m.mapListItem(item, kind, b)
	}
}

// mapListItem flattens one Markdown item. Its paragraphs join into a single
// HRML item, nested list items follow it, and other blocks are hoisted out
// between lists.
func (m *mapper) mapListItem(item ast.Node, kind hrast.ListKind, b *listBuilder) {
	var li *hrast.Node
	flush := func() {
		if li != nil && li.HasChildren() {
			b.add(kind, li)
		}
		li = nil
	}

	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch gmn := child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if li == nil {
				li = hrast.NewNode(hrast.NodeListItem)
			} else {
				hrast.AppendText(li, " ")
			}
			m.mapInlines(gmn, li)

		case *ast.List:
			flush()
			m.mapListItems(gmn, b)

		default:
			flush()
			b.interrupt()
			m.mapBlock(child, b.parent)
		}
	}
	flush()
}

// mapTable writes each table row as a paragraph with cells separated by
// a vertical bar.
func (m *mapper) mapTable(table *east.Table, parent *hrast.Node) {
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		para := hrast.NewNode(hrast.NodeParagraph)
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if cell != row.FirstChild() {
				hrast.AppendText(para, " | ")
			}
			m.mapInlines(cell, para)
		}
		if para.HasChildren() {
			hrast.AppendChild(parent, para)
		}
	}
}

func (m *mapper) mapInlines(gmParent ast.Node, parent *hrast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapInline(child, parent)
	}
}

func (m *mapper) mapInline(gmNode ast.Node, parent *hrast.Node) {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		hrast.AppendText(parent, string(unescape(gmn.Segment.Value(m.source))))
		if gmn.SoftLineBreak() || gmn.HardLineBreak() {
			hrast.AppendText(parent, " ")
		}

	case *ast.String:
		hrast.AppendText(parent, string(gmn.Value))

	case *ast.CodeSpan:
		hrast.AppendText(parent, m.codeSpan(gmn))

	case *ast.Emphasis:
		kind := hrast.NodeItalic
		if gmn.Level >= 2 {
			kind = hrast.NodeBold
		}
		span := hrast.NewNode(kind)
		m.mapInlines(gmn, span)
		if span.HasChildren() {
			hrast.AppendChild(parent, span)
		}

	case *ast.Link:
		m.appendLink(parent, hrast.NodeLink, m.plainText(gmn), string(gmn.Destination))

	case *ast.Image:
		m.appendLink(parent, hrast.NodeImage, m.plainText(gmn), string(gmn.Destination))

	case *ast.AutoLink:
		m.appendLink(parent, hrast.NodeLink, string(gmn.Label(m.source)), string(gmn.URL(m.source)))

	case *ast.RawHTML:
		var raw strings.Builder
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			raw.Write(seg.Value(m.source))
		}
		hrast.AppendText(parent, raw.String())

	case *east.TaskCheckBox:
		if gmn.IsChecked {
			hrast.AppendText(parent, "[x] ")
		} else {
			hrast.AppendText(parent, "[ ] ")
		}

	default:
		m.mapInlines(gmNode, parent)
	}
}

// appendLink adds a link or image. Without a destination only the text
// survives; a link without text shows its destination.
func (m *mapper) appendLink(parent *hrast.Node, kind hrast.NodeKind, text, dest string) {
	if dest == "" {
		hrast.AppendText(parent, text)
		return
	}
	if kind == hrast.NodeLink && text == "" {
		text = dest
	}
	hrast.AppendChild(parent, hrast.NewLink(kind, text, dest))
}

func (m *mapper) plainText(gmNode ast.Node) string {
	tmp := hrast.NewNode(hrast.NodeParagraph)
	m.mapInlines(gmNode, tmp)
	return strings.Join(strings.Fields(tmp.PlainText()), " ")
}

func (m *mapper) codeSpan(span *ast.CodeSpan) string {
	var b strings.Builder
	for child := span.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(m.source))
		case *ast.String:
			b.Write(c.Value)
		}
	}
	return b.String()
}

func (m *mapper) lines(gmNode ast.Node) string {
	var b strings.Builder
	lines := gmNode.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		b.Write(seg.Value(m.source))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m *mapper) htmlLines(block *ast.HTMLBlock) string {
	content := m.lines(block)
	if block.HasClosure() {
		content += "\n" + strings.TrimSuffix(string(block.ClosureLine.Value(m.source)), "\n")
	}
	return content
}

// unescape resolves backslash escapes and character references the way
// goldmark's HTML writer does for text.
func unescape(b []byte) []byte {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}
