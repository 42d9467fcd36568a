// Package convert turns Markdown documents into HRML markup.
//
// Markdown is parsed with goldmark, mapped onto an hrast tree, and the tree
// is written back out as HRML. Constructs HRML cannot express are degraded:
// nested lists are flattened, blocks inside quotes become quoted paragraphs,
// and code spans, strikethrough and raw inline HTML keep only their text.
package convert

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/owencmcgrath/hrml/pkg/hrast"
)

// Markdown flavors understood by the converter.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Converter converts Markdown to HRML. It is safe for concurrent use.
type Converter struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a converter for the given flavor. Unknown flavors fall back
// to CommonMark.
func New(flavor string) *Converter {
	f := flavorOrDefault(flavor)
	return &Converter{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (c *Converter) Flavor() string {
	return c.flavor
}

// Document parses Markdown source into an HRML document tree.
func (c *Converter) Document(ctx context.Context, source []byte) (*hrast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert cancelled: %w", err)
	}

	reader := text.NewReader(source)
	gmDoc := c.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert cancelled: %w", err)
	}

	return newMapper(source).mapDocument(gmDoc), nil
}

// Convert parses Markdown source and returns the equivalent HRML markup.
func (c *Converter) Convert(ctx context.Context, source []byte) (string, error) {
	doc, err := c.Document(ctx, source)
	if err != nil {
		return "", err
	}
	return Format(doc), nil
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}
