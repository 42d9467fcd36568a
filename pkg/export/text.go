package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/net/html"
)

// ruleWidth is the length of a horizontal rule when wrapping is off.
const ruleWidth = 40

// textBlock is one paragraph-like unit of plain text output.
type textBlock struct {
	prefix    string // first line
	hang      string // continuation lines
	text      strings.Builder
	verbatim  bool
	underline byte
	list      int // non-zero for list items; items of one list share it
	implicit  bool
}

type listState struct {
	ordered bool
	next    int
	id      int
}

// textWriter turns the renderer's HTML into readable plain text.
type textWriter struct {
	width   int
	blocks  []*textBlock
	cur     *textBlock
	quote   int
	lists   []listState
	listSeq int
	href    string
	anchor  int
}

// PlainText converts a rendered fragment to plain text. Paragraphs are
// separated by blank lines, list items get "-" or "N." markers, quotes get
// "> " per depth, links are followed by their URL in angle brackets, and
// images become "[alt]". Code is kept verbatim. Width > 0 wraps prose.
func PlainText(w io.Writer, fragment string, width int) error {
	tw := &textWriter{width: width}

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return fmt.Errorf("tokenize html: %w", err)
			}
			break
		}
		tw.token(tt, z.Token())
	}

	if _, err := io.WriteString(w, tw.String()); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

func (tw *textWriter) token(tt html.TokenType, tok html.Token) {
	switch tt {
	case html.StartTagToken, html.SelfClosingTagToken:
		tw.start(tok)
	case html.EndTagToken:
		tw.end(tok)
	case html.TextToken:
		tw.text(tok.Data)
	}
}

func (tw *textWriter) start(tok html.Token) {
	switch tok.Data {
	case "p":
		tw.begin(false)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		b := tw.begin(false)
		switch tok.Data {
		case "h1":
			b.underline = '='
		case "h2":
			b.underline = '-'
		}
	case "li":
		tw.item()
	case "ul", "ol":
		tw.listSeq++
		tw.lists = append(tw.lists, listState{ordered: tok.Data == "ol", next: 1, id: tw.listSeq})
	case "blockquote":
		tw.quote++
	case "pre":
		tw.begin(true)
	case "hr":
		b := tw.begin(true)
		n := ruleWidth
		if tw.width > 0 && tw.width-ansi.PrintableRuneWidth(b.prefix) < n {
			n = tw.width - ansi.PrintableRuneWidth(b.prefix)
		}
		b.text.WriteString(strings.Repeat("-", max(n, 3)))
		tw.finish()
	case "a":
		tw.ensure()
		tw.href = attr(tok, "href")
		tw.anchor = tw.cur.text.Len()
	case "img":
		implicit := tw.ensure()
		tw.cur.text.WriteString("[" + attr(tok, "alt") + "]")
		if implicit {
			tw.finish()
		}
	}
}

func (tw *textWriter) end(tok html.Token) {
	switch tok.Data {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "pre":
		tw.finish()
	case "ul", "ol":
		if len(tw.lists) > 0 {
			tw.lists = tw.lists[:len(tw.lists)-1]
		}
	case "blockquote":
		if tw.quote > 0 {
			tw.quote--
		}
	case "a":
		if tw.cur == nil {
			return
		}
		label := tw.cur.text.String()[tw.anchor:]
		if tw.href != "" && tw.href != "#" && tw.href != label {
			tw.cur.text.WriteString(" <" + tw.href + ">")
		}
		tw.href = ""
		if tw.cur.implicit {
			tw.finish()
		}
	}
}

func (tw *textWriter) text(data string) {
	if tw.cur == nil {
		if strings.TrimSpace(data) == "" {
			return
		}
		tw.ensure()
	}
	tw.cur.text.WriteString(data)
}

// begin opens a new block prefixed for the current quote depth.
func (tw *textWriter) begin(verbatim bool) *textBlock {
	tw.finish()

	q := strings.Repeat("> ", tw.quote)
	tw.cur = &textBlock{prefix: q, hang: q, verbatim: verbatim}
	return tw.cur
}

// ensure opens an implicit block when inline content appears outside one.
// It reports whether it had to.
func (tw *textWriter) ensure() bool {
	if tw.cur != nil {
		return false
	}
	tw.begin(false).implicit = true
	return true
}

func (tw *textWriter) item() {
	marker := "- "
	id := -1
	if n := len(tw.lists); n > 0 {
		l := &tw.lists[n-1]
		if l.ordered {
			marker = strconv.Itoa(l.next) + ". "
			l.next++
		}
		id = l.id
	}

	b := tw.begin(false)
	b.prefix += marker
	b.hang += strings.Repeat(" ", len(marker))
	b.list = id
}

func (tw *textWriter) finish() {
	if tw.cur == nil {
		return
	}
	tw.blocks = append(tw.blocks, tw.cur)
	tw.cur = nil
}

func (tw *textWriter) String() string {
	tw.finish()

	var out strings.Builder
	for i, b := range tw.blocks {
		if i > 0 {
			prev := tw.blocks[i-1]
			if b.list != 0 && b.list == prev.list {
				out.WriteByte('\n')
			} else {
				out.WriteString("\n\n")
			}
		}
		out.WriteString(tw.format(b))
	}

	if out.Len() > 0 {
		out.WriteByte('\n')
	}
	return out.String()
}

// format lays out one block: wrapped and prefixed prose, or verbatim code
// with the quote prefix on every line.
func (tw *textWriter) format(b *textBlock) string {
	text := b.text.String()
	if !b.verbatim {
		text = strings.Join(strings.Fields(text), " ")
		if tw.width > 0 {
			avail := tw.width - ansi.PrintableRuneWidth(b.prefix)
			if avail > 0 {
				text = wordwrap.String(text, avail)
			}
		}
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = b.prefix + line
		} else {
			lines[i] = b.hang + line
		}
	}

	if b.underline != 0 && len(lines) > 0 {
		width := 0
		for _, line := range lines {
			width = max(width, ansi.PrintableRuneWidth(line))
		}
		lines = append(lines, b.hang+strings.Repeat(string(b.underline), width-ansi.PrintableRuneWidth(b.hang)))
	}

	return strings.Join(lines, "\n")
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
