// Package lexer splits sanitized HRML text into lines and classifies each
// line by its leading sentinel.
//
// The lexer performs no escaping and no inline resolution. Lines inside a
// code fence are passed through unclassified.
package lexer

import (
	"strings"
)

// Kind classifies the shape of a line.
type Kind uint8

// Line kinds.
const (
	KindBlank Kind = iota
	KindText
	KindHeading
	KindUnorderedItem
	KindOrderedItem
	KindQuote
	KindFenceOpen
	KindFenceClose
	KindCode
	KindRule
	KindLinkBlock
	KindImageBlock
)

var kindNames = [...]string{
	KindBlank:         "blank",
	KindText:          "text",
	KindHeading:       "heading",
	KindUnorderedItem: "unordered-item",
	KindOrderedItem:   "ordered-item",
	KindQuote:         "quote",
	KindFenceOpen:     "fence-open",
	KindFenceClose:    "fence-close",
	KindCode:          "code",
	KindRule:          "rule",
	KindLinkBlock:     "link-block",
	KindImageBlock:    "image-block",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MaxHeadingLevel bounds the heading counter.
const MaxHeadingLevel = 6

// Line is one classified source line.
type Line struct {
	// Kind is the line's shape.
	Kind Kind

	// Number is the 1-based line number.
	Number int

	// Raw is the line exactly as written, without its newline.
	Raw string

	// Text is the content after the sentinel with surrounding whitespace
	// removed. For KindText it is the trimmed line.
	Text string

	// Column is the 1-based byte column in Raw where Text begins.
	Column int

	// Level is the clamped heading level or the quote depth.
	Level int

	// Count is the raw number of marker letters of a counted sentinel.
	Count int

	// Lang is the language word of a fence open line.
	Lang string

	// Link holds the parts of a link or image block line.
	Link LinkParts
}

// Clamped reports whether a heading's written level was out of range.
func (l Line) Clamped() bool {
	return l.Kind == KindHeading && l.Count != l.Level
}

// Lex splits source on "\n" and classifies every line. A trailing newline
// does not produce an extra blank line.
func Lex(source string) []Line {
	if source == "" {
		return nil
	}

	raw := strings.Split(strings.TrimSuffix(source, "\n"), "\n")
	lines := make([]Line, 0, len(raw))

	inFence := false
	for i, text := range raw {
		line := classify(text, inFence)
		line.Number = i + 1

		switch line.Kind {
		case KindFenceOpen:
			inFence = true
		case KindFenceClose:
			inFence = false
		}

		lines = append(lines, line)
	}

	return lines
}

// classify determines the kind of a single line.
func classify(raw string, inFence bool) Line {
	line := Line{Raw: raw}

	trimmed := strings.TrimSpace(raw)
	indent := len(raw) - len(strings.TrimLeft(raw, " \t\v\f\r"))

	if inFence {
		if trimmed == TokenFenceClose {
			line.Kind = KindFenceClose
			return line
		}
		line.Kind = KindCode
		line.Text = raw
		line.Column = 1
		return line
	}

	if trimmed == "" {
		line.Kind = KindBlank
		return line
	}

	if trimmed == TokenRule {
		line.Kind = KindRule
		line.Text = trimmed
		line.Column = indent + 1
		return line
	}

	if lang, ok := fenceOpen(trimmed); ok {
		line.Kind = KindFenceOpen
		line.Lang = lang
		return line
	}

	if tryHeading(&line, trimmed, indent) ||
		tryQuote(&line, trimmed, indent) ||
		tryItem(&line, trimmed, indent) ||
		tryLinkBlock(&line, trimmed, indent) {
		return line
	}

	line.Kind = KindText
	line.Text = trimmed
	line.Column = indent + 1
	return line
}

// fenceOpen matches `jkd` optionally followed by a single language word.
func fenceOpen(trimmed string) (string, bool) {
	fields := strings.Fields(trimmed)
	if len(fields) == 0 || fields[0] != TokenFenceOpen || len(fields) > 2 {
		return "", false
	}
	if len(fields) == 2 {
		return fields[1], true
	}
	return "", true
}

// sentinelRest returns the content following a sentinel of length n, and
// false when the sentinel runs straight into other text.
func sentinelRest(trimmed string, n int) (string, int, bool) {
	if n < len(trimmed) && !IsSpace(trimmed[n]) {
		return "", 0, false
	}
	rest := trimmed[n:]
	lead := len(rest) - len(strings.TrimLeft(rest, " \t\v\f\r"))
	return strings.TrimSpace(rest), n + lead, true
}

func tryHeading(line *Line, trimmed string, indent int) bool {
	count := CountRun(trimmed, HeadingPrefix, HeadingMarker)
	if count == 0 {
		return false
	}

	text, offset, ok := sentinelRest(trimmed, count+1)
	if !ok || text == "" {
		return false
	}

	level, _ := ClampLevel(count, MaxHeadingLevel)
	line.Kind = KindHeading
	line.Count = count
	line.Level = level
	line.Text = text
	line.Column = indent + offset + 1
	return true
}

func tryQuote(line *Line, trimmed string, indent int) bool {
	depth := CountRun(trimmed, QuotePrefix, QuoteMarker)
	if depth == 0 {
		return false
	}

	text, offset, ok := sentinelRest(trimmed, depth+1)
	if !ok {
		return false
	}

	line.Kind = KindQuote
	line.Count = depth
	line.Level = depth
	line.Text = text
	line.Column = indent + offset + 1
	return true
}

func tryItem(line *Line, trimmed string, indent int) bool {
	var kind Kind
	switch {
	case strings.HasPrefix(trimmed, TokenUnorderedItem):
		kind = KindUnorderedItem
	case strings.HasPrefix(trimmed, TokenOrderedItem):
		kind = KindOrderedItem
	default:
		return false
	}

	text, offset, ok := sentinelRest(trimmed, len(TokenUnorderedItem))
	if !ok {
		return false
	}

	line.Kind = kind
	line.Text = text
	line.Column = indent + offset + 1
	return true
}

func tryLinkBlock(line *Line, trimmed string, indent int) bool {
	parts, n, ok := ScanLink(trimmed)
	if !ok || n != len(trimmed) {
		return false
	}

	line.Kind = KindLinkBlock
	if strings.HasPrefix(trimmed, TokenImage) {
		line.Kind = KindImageBlock
	}
	line.Link = parts
	line.Text = trimmed
	line.Column = indent + 1
	return true
}
