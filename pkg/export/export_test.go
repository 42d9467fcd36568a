package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owencmcgrath/hrml/pkg/export"
	"github.com/owencmcgrath/hrml/pkg/hrml"
	"github.com/owencmcgrath/hrml/pkg/parser"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    export.Format
		wantErr bool
	}{
		{"", export.FormatHTML, false},
		{"html", export.FormatHTML, false},
		{" Document ", export.FormatDocument, false},
		{"TEXT", export.FormatText, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		got, err := export.ParseFormat(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormat_Extension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".html", export.FormatHTML.Extension())
	assert.Equal(t, ".html", export.FormatDocument.Extension())
	assert.Equal(t, ".txt", export.FormatText.Extension())
	assert.Len(t, export.ValidFormats(), 3)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	fragment := hrml.Render("jf Title\n\nja a\nja b")

	var html bytes.Buffer
	require.NoError(t, export.Write(&html, export.FormatHTML, fragment, export.Options{}))
	assert.Equal(t, fragment, html.String())

	var text bytes.Buffer
	require.NoError(t, export.Write(&text, export.FormatText, fragment, export.Options{}))
	assert.Equal(t, "Title\n=====\n\n- a\n- b\n", text.String())

	var doc bytes.Buffer
	require.NoError(t, export.Write(&doc, export.FormatDocument, fragment, export.Options{Title: "Title"}))
	assert.Contains(t, doc.String(), "<title>Title</title>")

	require.Error(t, export.Write(&bytes.Buffer{}, export.Format("pdf"), fragment, export.Options{}))
}

func TestDocument(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Document(&buf, "<p>hi</p>\n", export.Options{}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n"))
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, "<title>Untitled</title>")
	assert.Contains(t, out, "<body>\n<p>hi</p>\n</body>")
	assert.NotContains(t, out, "stylesheet")

	buf.Reset()
	require.NoError(t, export.Document(&buf, "", export.Options{
		Title:      "a <b>",
		Lang:       "de",
		Stylesheet: "style.css",
	}))

	out = buf.String()
	assert.Contains(t, out, `<html lang="de">`)
	assert.Contains(t, out, "<title>a &lt;b&gt;</title>")
	assert.Contains(t, out, `<link rel="stylesheet" href="style.css">`)
}

func TestTitleFromDocument(t *testing.T) {
	t.Parallel()

	doc, _ := parser.Parse("intro\n\njff Hello js world sj\n\njf Second")
	assert.Equal(t, "Hello world", export.TitleFromDocument(doc))

	doc, _ = parser.Parse("no headings here")
	assert.Empty(t, export.TitleFromDocument(doc))
}
