package export

import (
	"fmt"
	"html/template"
	"io"
)

const (
	defaultTitle = "Untitled"
	defaultLang  = "en"
)

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="generator" content="hrml">
<title>{{.Title}}</title>
{{- if .Stylesheet}}
<link rel="stylesheet" href="{{.Stylesheet}}">
{{- end}}
</head>
<body>
{{.Body}}</body>
</html>
`))

type documentData struct {
	Title      string
	Lang       string
	Stylesheet string
	Body       template.HTML
}

// Document wraps a rendered fragment in a standalone HTML page. The
// fragment is trusted as produced by the renderer; title, language and
// stylesheet are escaped by the template.
func Document(w io.Writer, fragment string, opts Options) error {
	data := documentData{
		Title:      opts.Title,
		Lang:       opts.Lang,
		Stylesheet: opts.Stylesheet,
		//nolint:gosec // the fragment is renderer output with all text escaped
		Body: template.HTML(fragment),
	}
	if data.Title == "" {
		data.Title = defaultTitle
	}
	if data.Lang == "" {
		data.Lang = defaultLang
	}

	if err := documentTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return nil
}
