package hrml

import (
	"strings"
	"unicode/utf8"
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Sanitize prepares raw editor or file text for rendering: NUL bytes are
// removed and CRLF and lone CR line endings become LF.
func Sanitize(text string) string {
	return lineEndings.Replace(strings.ReplaceAll(text, "\x00", ""))
}

// Stats are the counters shown next to the editor.
type Stats struct {
	Words      int
	Characters int
	Lines      int
}

// Count returns word, character and line counts of markup. Words are runs
// of non-whitespace; characters are runes; a trailing newline does not
// start a new line.
func Count(markup string) Stats {
	if markup == "" {
		return Stats{}
	}

	return Stats{
		Words:      len(strings.Fields(markup)),
		Characters: utf8.RuneCountInString(markup),
		Lines:      strings.Count(strings.TrimSuffix(markup, "\n"), "\n") + 1,
	}
}
