// Package export serializes rendered HRML into the formats the editor could
// download: the bare HTML fragment, a standalone HTML document, and plain
// text.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/owencmcgrath/hrml/pkg/hrast"
)

// Format identifies an export format.
type Format string

// Supported export formats.
const (
	FormatHTML     Format = "html"
	FormatDocument Format = "document"
	FormatText     Format = "text"
)

// ValidFormats lists every supported format in display order.
func ValidFormats() []Format {
	return []Format{FormatHTML, FormatDocument, FormatText}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatDocument, FormatText:
		return f, nil
	case "":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (valid: html, document, text)", s)
	}
}

// Extension returns the file extension conventionally used for f.
func (f Format) Extension() string {
	if f == FormatText {
		return ".txt"
	}
	return ".html"
}

// Options controls document and text output.
type Options struct {
	// Title is the document title. Empty means "Untitled".
	Title string

	// Lang is the document language attribute. Empty means "en".
	Lang string

	// Stylesheet is an optional stylesheet URL linked from the document.
	Stylesheet string

	// Width wraps plain text at this many columns. Zero disables wrapping.
	Width int
}

// Write serializes the rendered fragment in format f.
func Write(w io.Writer, f Format, fragment string, opts Options) error {
	switch f {
	case FormatHTML, "":
		if _, err := io.WriteString(w, fragment); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
		return nil
	case FormatDocument:
		return Document(w, fragment, opts)
	case FormatText:
		return PlainText(w, fragment, opts.Width)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// TitleFromDocument returns the plain text of the first heading in doc, or
// "" when there is none.
func TitleFromDocument(doc *hrast.Node) string {
	heading := hrast.FindFirst(doc, func(n *hrast.Node) bool {
		return n.Kind == hrast.NodeHeading
	})
	if heading == nil {
		return ""
	}
	return strings.TrimSpace(heading.PlainText())
}
