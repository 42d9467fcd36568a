package convert_test

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owencmcgrath/hrml/pkg/convert"
	"github.com/owencmcgrath/hrml/pkg/hrast"
	"github.com/owencmcgrath/hrml/pkg/hrml"
)

func mustConvert(t *testing.T, c *convert.Converter, md string) string {
	t.Helper()

	out, err := c.Convert(context.Background(), []byte(md))
	require.NoError(t, err)
	return out
}

func TestConvert_CommonMark(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		md   string
		want string
	}{
		{"empty", "", ""},
		{
			"heading and emphasis",
			"# Title\n\nHello **world** and *you*.\n",
			"jf Title\n\nHello js world sj and jd you dj.\n",
		},
		{"deep heading", "#### Four\n", "jffff Four\n"},
		{"soft break", "a\nb\n", "a b\n"},
		{
			"lists",
			"- a\n- b\n\n1. x\n2. y\n",
			"ja a\nja b\n\njl x\njl y\n",
		},
		{"nested list flattened", "- a\n  - b\n- c\n", "ja a\nja b\nja c\n"},
		{
			"quotes",
			"> one\n>\n> two\n>> deep\n",
			"kl one\nkl\nkl two\nkll deep\n",
		},
		{
			"fenced code",
			"```go\nfmt.Println(1)\n```\n",
			"jkd go\nfmt.Println(1)\ndkj\n",
		},
		{"indented code", "    x := 1\n", "jkd\nx := 1\ndkj\n"},
		{"rule", "***\n", "js\n"},
		{
			"link block",
			"[docs](https://example.com)\n",
			"jg [docs] gh [https://example.com] hg\n",
		},
		{
			"inline link",
			"see [docs](https://example.com) now\n",
			"see jg [docs] gh [https://example.com] hg now\n",
		},
		{"image block", "![a cat](cat.png)\n", "jh [a cat] gh [cat.png] hj\n"},
		{"escapes", "a \\* b &amp; c\n", "a * b & c\n"},
		{"code span", "use `x := 1` here\n", "use x := 1 here\n"},
		{"bracket in link text", "[a\\]b](u)\n", "jg [a)b] gh [u] hg\n"},
		{
			"html block",
			"<div>\nhi\n</div>\n",
			"jkd html\n<div>\nhi\n</div>\ndkj\n",
		},
	}

	c := convert.New(convert.FlavorCommonMark)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mustConvert(t, c, tt.md))
		})
	}
}

func TestConvert_GFM(t *testing.T) {
	t.Parallel()

	gfm := convert.New(convert.FlavorGFM)
	assert.Equal(t, convert.FlavorGFM, gfm.Flavor())

	out := mustConvert(t, gfm, "~~gone~~ and https://example.com\n")
	assert.Equal(t, "gone and jg [https://example.com] gh [https://example.com] hg\n", out)

	out = mustConvert(t, gfm, "- [x] done\n- [ ] todo\n")
	assert.Contains(t, out, "ja [x]")
	assert.Contains(t, out, "ja [ ]")

	out = mustConvert(t, gfm, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	assert.Contains(t, out, "a | b")
	assert.Contains(t, out, "1 | 2")

	plain := mustConvert(t, convert.New(convert.FlavorCommonMark), "~~gone~~\n")
	assert.Equal(t, "~~gone~~\n", plain)
}

func TestNew_UnknownFlavor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, convert.FlavorCommonMark, convert.New("markdown-extra").Flavor())
}

func TestConvert_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := convert.New("").Convert(ctx, []byte("# x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestConvert_RendersEquivalentStructure(t *testing.T) {
	t.Parallel()

	md := "# Title\n\nIntro with **bold** text.\n\n- one\n- two\n\n> quoted\n\n```sh\necho hi\n```\n"
	out := mustConvert(t, convert.New(convert.FlavorCommonMark), md)

	dom, err := goquery.NewDocumentFromReader(strings.NewReader(hrml.Render(out)))
	require.NoError(t, err)

	assert.Equal(t, "Title", dom.Find("h1").Text())
	assert.Equal(t, "bold", dom.Find("p > strong").Text())
	assert.Equal(t, 2, dom.Find("ul > li").Length())
	assert.Equal(t, "quoted", dom.Find("blockquote > p").Text())
	assert.Equal(t, "echo hi", dom.Find("pre > code.language-sh").Text())
}

func TestFormat(t *testing.T) {
	t.Parallel()

	doc := hrast.NewDocument()

	heading := hrast.NewHeading(9)
	hrast.AppendText(heading, "Deep")
	hrast.AppendChild(doc, heading)

	quote := hrast.NewBlockQuote(1)
	for _, s := range []string{"first", "second"} {
		para := hrast.NewNode(hrast.NodeParagraph)
		hrast.AppendText(para, s)
		hrast.AppendChild(quote, para)
	}
	hrast.AppendChild(doc, quote)

	para := hrast.NewNode(hrast.NodeParagraph)
	underline := hrast.NewNode(hrast.NodeUnderline)
	hrast.AppendText(underline, "under\nlined")
	hrast.AppendChild(para, underline)
	hrast.AppendChild(para, hrast.NewLink(hrast.NodeImage, "", "a b.png"))
	hrast.AppendChild(doc, para)

	hrast.AppendChild(doc, hrast.NewCodeBlock("", "", true))

	want := "jffffff Deep\n" +
		"\n" +
		"kl first\nkl\nkl second\n" +
		"\n" +
		"ju under lined ujjh [] gh [a%20b.png] hj\n" +
		"\n" +
		"jkd\ndkj\n"
	assert.Equal(t, want, convert.Format(doc))
	assert.Empty(t, convert.Format(nil))
}
