package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owencmcgrath/hrml/pkg/export"
)

func plainText(t *testing.T, fragment string, width int) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, export.PlainText(&buf, fragment, width))
	return buf.String()
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{"empty", "", ""},
		{"paragraph", "<p>hello <strong>bold</strong> world</p>\n", "hello bold world\n"},
		{"entities", "<p>a &amp; b &lt;c&gt;</p>\n", "a & b <c>\n"},
		{"h1", "<h1>Title</h1>\n", "Title\n=====\n"},
		{"h2", "<h2>Sub</h2>\n", "Sub\n---\n"},
		{"h3", "<h3>Deep</h3>\n", "Deep\n"},
		{
			"unordered list",
			"<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n",
			"- a\n- b\n",
		},
		{
			"ordered list",
			"<ol>\n<li>x</li>\n<li>y</li>\n</ol>\n",
			"1. x\n2. y\n",
		},
		{
			"adjacent lists",
			"<ul>\n<li>a</li>\n</ul>\n<ol>\n<li>b</li>\n</ol>\n",
			"- a\n\n1. b\n",
		},
		{
			"nested quote",
			"<blockquote>\n<p>one</p>\n<blockquote>\n<p>two</p>\n</blockquote>\n</blockquote>\n",
			"> one\n\n> > two\n",
		},
		{
			"inline link",
			"<p>see <a href=\"https://example.com\">docs</a></p>\n",
			"see docs <https://example.com>\n",
		},
		{"neutralized link", "<a href=\"#\">x</a>\n", "x\n"},
		{
			"link block",
			"<a href=\"https://example.com\">https://example.com</a>\n",
			"https://example.com\n",
		},
		{"image", "<img src=\"cat.png\" alt=\"a cat\">\n", "[a cat]\n"},
		{"code", "<pre><code>a  b\n  c</code></pre>\n", "a  b\n  c\n"},
		{"rule", "<hr>\n", strings.Repeat("-", 40) + "\n"},
		{
			"mixed",
			"<h1>T</h1>\n<p>p</p>\n<hr>\n<p>q</p>\n",
			"T\n=\n\np\n\n" + strings.Repeat("-", 40) + "\n\nq\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, plainText(t, tt.fragment, 0))
		})
	}
}

func TestPlainText_Wrap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "one two\nthree four\n", plainText(t, "<p>one two three four</p>\n", 12))
	assert.Equal(t, "- alpha\n  beta\n  gamma\n", plainText(t, "<ul>\n<li>alpha beta gamma</li>\n</ul>\n", 10))
	assert.Equal(t, strings.Repeat("-", 10)+"\n", plainText(t, "<hr>\n", 10))
}

func TestPlainText_CodeKeepsLongLines(t *testing.T) {
	t.Parallel()

	line := strings.Repeat("x", 50)
	assert.Equal(t, line+"\n", plainText(t, "<pre><code>"+line+"</code></pre>\n", 10))
}
