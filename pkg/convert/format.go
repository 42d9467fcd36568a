package convert

import (
	"strings"

	"github.com/owencmcgrath/hrml/pkg/hrast"
	"github.com/owencmcgrath/hrml/pkg/lexer"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Format writes an hrast document as HRML markup. Blocks are separated by
// a blank line; each paragraph is written on a single line.
func Format(doc *hrast.Node) string {
	if doc == nil {
		return ""
	}

	var b strings.Builder
	for i, block := range doc.Children() {
		if i > 0 {
			b.WriteByte('\n')
		}
		formatBlock(&b, block)
	}
	return b.String()
}

func formatBlock(b *strings.Builder, node *hrast.Node) {
	switch node.Kind {
	case hrast.NodeHeading:
		level, _ := lexer.ClampLevel(node.Block.HeadingLevel, hrast.MaxHeadingLevel)
		line(b, string(lexer.HeadingPrefix)+strings.Repeat(string(lexer.HeadingMarker), level), formatInline(node))

	case hrast.NodeParagraph:
		line(b, "", formatInline(node))

	case hrast.NodeList:
		marker := lexer.TokenUnorderedItem
		if node.Block.List.Kind == hrast.ListOrdered {
			marker = lexer.TokenOrderedItem
		}
		for item := node.FirstChild; item != nil; item = item.Next {
			line(b, marker, formatInline(item))
		}

	case hrast.NodeBlockQuote:
		formatQuote(b, node, 1)

	case hrast.NodeCodeBlock:
		code := node.Block.CodeBlock
		open := lexer.TokenFenceOpen
		if fields := strings.Fields(code.Language); len(fields) > 0 {
			open += " " + fields[0]
		}
		b.WriteString(open + "\n")
		if code.Content != "" {
			b.WriteString(code.Content + "\n")
		}
		b.WriteString(lexer.TokenFenceClose + "\n")

	case hrast.NodeHorizontalRule:
		b.WriteString(lexer.TokenRule + "\n")

	case hrast.NodeLinkBlock, hrast.NodeImageBlock:
		b.WriteString(formatLink(node.Kind, node.Block.Link) + "\n")
	}
}

// formatQuote writes a quote container. Paragraphs at the same depth are
// separated by a bare quote sentinel.
func formatQuote(b *strings.Builder, quote *hrast.Node, depth int) {
	sentinel := string(lexer.QuotePrefix) + strings.Repeat(string(lexer.QuoteMarker), depth)

	afterPara := false
	for child := quote.FirstChild; child != nil; child = child.Next {
		switch child.Kind {
		case hrast.NodeBlockQuote:
			formatQuote(b, child, depth+1)
			afterPara = false
		case hrast.NodeParagraph:
			if afterPara {
				b.WriteString(sentinel + "\n")
			}
			line(b, sentinel, formatInline(child))
			afterPara = true
		}
	}
}

func line(b *strings.Builder, sentinel, text string) {
	if sentinel != "" {
		b.WriteString(sentinel)
		if text != "" {
			b.WriteByte(' ')
		}
	}
	b.WriteString(text)
	b.WriteByte('\n')
}

func formatInline(parent *hrast.Node) string {
	var b strings.Builder
	writeInline(&b, parent)
	return strings.TrimSpace(b.String())
}

func writeInline(b *strings.Builder, parent *hrast.Node) {
	for child := parent.FirstChild; child != nil; child = child.Next {
		switch child.Kind {
		case hrast.NodeText:
			b.WriteString(lineBreaks.Replace(child.Text()))
		case hrast.NodeBold, hrast.NodeItalic, hrast.NodeUnderline:
			opener := spanOpener(child.Kind)
			b.WriteString(opener + " ")
			writeInline(b, child)
			b.WriteString(" " + lexer.CloserFor(opener))
		case hrast.NodeLink, hrast.NodeImage:
			b.WriteString(formatLink(child.Kind, child.Inline.Link))
		}
	}
}

func spanOpener(kind hrast.NodeKind) string {
	switch kind {
	case hrast.NodeItalic:
		return lexer.TokenItalic
	case hrast.NodeUnderline:
		return lexer.TokenUnderline
	default:
		return lexer.TokenBold
	}
}

// formatLink writes the bracketed link or image form. A `]` in the text
// would end the bracket early, so it is replaced; the URL is
// percent-encoded instead.
func formatLink(kind hrast.NodeKind, link *hrast.LinkAttrs) string {
	opener := lexer.TokenLink
	if kind == hrast.NodeImage || kind == hrast.NodeImageBlock {
		opener = lexer.TokenImage
	}

	text := strings.ReplaceAll(lineBreaks.Replace(link.Text), "]", ")")
	dest := strings.NewReplacer("]", "%5D", " ", "%20").Replace(lineBreaks.Replace(link.Destination))

	return opener + " [" + text + "] " + lexer.TokenSeparator + " [" + dest + "] " + lexer.CloserFor(opener)
}
