// Package langdetect guesses the language of an unlabeled code fence so the
// rendered <code> element can carry a language-* class for highlighters.
//
// Detection is deterministic: the same code always yields the same answer.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/owencmcgrath/hrml/pkg/lexer"
)

// Fence tags returned by the pattern rules.
const (
	LangHRML       = "hrml"
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
)

// DefaultCandidates are the enry language names the classifier chooses
// between.
var DefaultCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detector guesses code languages. The zero value is not usable; call New.
type Detector struct {
	candidates []string
}

// New creates a Detector whose classifier picks among candidates, or
// DefaultCandidates when none are given.
func New(candidates ...string) *Detector {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	return &Detector{candidates: candidates}
}

var defaultDetector = New()

// Detect guesses the language of code with the default candidates.
func Detect(code string) string {
	return defaultDetector.Detect(code)
}

// Detect returns a lowercase fence tag for code, or "" when no strategy is
// confident.
//
// Strategies run in order: shebang, pattern rules, enry's classifier.
func (d *Detector) Detect(code string) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}

	content := []byte(code)

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := matchPatterns(code); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, d.candidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

// rule is one pattern heuristic. Rules are tried in order and the first
// match wins.
type rule struct {
	lang  string
	match func(code, trimmed string) bool
}

var rules = []rule{
	{LangHRML, isHRML},
	{langGo, func(_, trimmed string) bool {
		return strings.HasPrefix(trimmed, "package ")
	}},
	{langPython, isPython},
	{langHTML, func(_, trimmed string) bool {
		lower := strings.ToLower(trimmed)
		return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
	}},
	{langJSON, func(_, trimmed string) bool {
		return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
			strings.Contains(trimmed, `"`)
	}},
	{langDockerfile, func(code, trimmed string) bool {
		return strings.HasPrefix(trimmed, "FROM ") ||
			(strings.Contains(code, "\nFROM ") && strings.Contains(code, "\nRUN ")) ||
			(strings.Contains(code, "WORKDIR ") && strings.Contains(code, "COPY "))
	}},
	{langSQL, func(_, trimmed string) bool {
		upper := strings.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{langRust, func(code, _ string) bool {
		return containsAny(code, "fn main()", "println!", "let mut ")
	}},
	{langJavaScript, func(code, _ string) bool {
		return containsAny(code, "=>", "const ", "let ", "console.log")
	}},
	{langYAML, isYAML},
}

func matchPatterns(code string) string {
	trimmed := strings.TrimSpace(code)
	for _, r := range rules {
		if r.match(code, trimmed) {
			return r.lang
		}
	}
	return ""
}

// isHRML reports whether most non-blank lines open with an HRML block
// sentinel.
func isHRML(code, _ string) bool {
	sentinels, total := 0, 0
	for _, line := range lexer.Lex(code) {
		switch line.Kind {
		case lexer.KindBlank:
			continue
		case lexer.KindHeading, lexer.KindUnorderedItem, lexer.KindOrderedItem,
			lexer.KindQuote, lexer.KindFenceOpen, lexer.KindRule,
			lexer.KindLinkBlock, lexer.KindImageBlock:
			sentinels++
		}
		total++
	}
	return sentinels >= 2 && sentinels*2 >= total
}

func isPython(code, trimmed string) bool {
	if strings.Contains(code, "def ") && strings.Contains(code, "):") {
		return true
	}
	if strings.Contains(code, "import ") && !strings.Contains(code, "import (") &&
		(strings.Contains(code, "from ") || strings.HasPrefix(trimmed, "import ")) {
		return true
	}
	return containsAny(code, "__name__", "__main__")
}

// isYAML counts key: value pairs and root list items.
func isYAML(code, _ string) bool {
	keys := 0
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") && !containsAny(line, "(", "{") && !strings.HasPrefix(line, `"`) {
			keys++
		}
		if strings.HasPrefix(line, "- ") {
			keys++
		}
	}
	return keys >= 2
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// normalize converts enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
