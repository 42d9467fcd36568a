package lexer

import "strings"

// LinkParts is the payload of a link or image construct.
type LinkParts struct {
	// Text is the visible text of a link or the alt text of an image.
	Text string

	// URL is the link destination or image source.
	URL string
}

// ScanLink parses a link (`jg`) or image (`jh`) construct at the start of s.
// It returns the parts, the number of bytes consumed, and whether a
// well-formed construct was found.
//
// Two shapes are accepted:
//
//	jg [text] gh [url] hg
//	jg text gh url hg
//
// In the bracketed shape the first `]` closes each part. In the bare shape
// the separator and the closer must stand alone as whitespace-delimited
// words. A link needs non-empty text; an image may have an empty alt.
// Both need a non-empty URL.
func ScanLink(s string) (LinkParts, int, bool) {
	return NewLinkScanner(s).Scan(0)
}

// LinkScanner recognizes links and images at increasing offsets of one
// text. Searches for brackets, separators and closers remember how far they
// reached, so scanning every opener in the text costs time linear in its
// length even when none of them is well formed.
type LinkScanner struct {
	s string

	textBracket searchMemo
	urlBracket  searchMemo
	sep         searchMemo
	closers     map[string]*searchMemo
	tails       map[tailKey]tail
}

// tailKey identifies everything after the text part of a construct: the
// shape, the closer, and where the text part ended.
type tailKey struct {
	bare   bool
	closer string
	at     int
}

type tail struct {
	url string
	end int
	ok  bool
}

// searchMemo caches the last forward search. A search from any offset in
// [from, at] finds at again, and a failed search stays failed for every
// later offset.
type searchMemo struct {
	from  int
	at    int
	valid bool
}

func (m *searchMemo) find(from int, search func(int) int) int {
	if m.valid && from >= m.from && (m.at < 0 || from <= m.at) {
		return m.at
	}
	m.from, m.at, m.valid = from, search(from), true
	return m.at
}

// NewLinkScanner returns a scanner over s.
func NewLinkScanner(s string) *LinkScanner {
	return &LinkScanner{
		s:       s,
		closers: make(map[string]*searchMemo, 2),
		tails:   make(map[tailKey]tail),
	}
}

// Scan parses a construct starting at offset. The byte count it returns is
// relative to offset. Offsets passed to successive calls must not decrease.
func (ls *LinkScanner) Scan(offset int) (LinkParts, int, bool) {
	s := ls.s
	opener := ""
	switch {
	case strings.HasPrefix(s[offset:], TokenLink):
		opener = TokenLink
	case strings.HasPrefix(s[offset:], TokenImage):
		opener = TokenImage
	default:
		return LinkParts{}, 0, false
	}

	closer := CloserFor(opener)
	pos := skipSpace(s, offset+len(opener))

	var (
		textEnd int
		next    int
		t       tail
	)
	if pos < len(s) && s[pos] == '[' {
		end := ls.textBracket.find(pos+1, ls.indexBracket)
		if end < 0 {
			return LinkParts{}, 0, false
		}
		textEnd, next = end, end+1
		t = ls.tail(tailKey{closer: closer, at: next})
		pos++
	} else {
		sep := ls.sep.find(pos, ls.wordFinder(TokenSeparator))
		if sep < 0 {
			return LinkParts{}, 0, false
		}
		textEnd = sep
		t = ls.tail(tailKey{bare: true, closer: closer, at: sep})
	}

	if !t.ok {
		return LinkParts{}, 0, false
	}

	parts := LinkParts{
		Text: strings.TrimSpace(s[pos:textEnd]),
		URL:  t.url,
	}
	if opener == TokenLink && parts.Text == "" {
		return LinkParts{}, 0, false
	}

	return parts, t.end - offset, true
}

// tail resolves the separator, URL and closer that follow the text part.
func (ls *LinkScanner) tail(key tailKey) tail {
	if t, ok := ls.tails[key]; ok {
		return t
	}

	var t tail
	if key.bare {
		t = ls.bareTail(key.at, key.closer)
	} else {
		t = ls.bracketedTail(key.at, key.closer)
	}
	ls.tails[key] = t
	return t
}

// bracketedTail parses `gh [url] closer` after the text bracket.
func (ls *LinkScanner) bracketedTail(pos int, closer string) tail {
	s := ls.s

	pos = skipSpace(s, pos)
	if !strings.HasPrefix(s[pos:], TokenSeparator) {
		return tail{}
	}
	pos = skipSpace(s, pos+len(TokenSeparator))

	if pos >= len(s) || s[pos] != '[' {
		return tail{}
	}
	end := ls.urlBracket.find(pos+1, ls.indexBracket)
	if end < 0 {
		return tail{}
	}
	url := strings.TrimSpace(s[pos+1 : end])

	pos = skipSpace(s, end+1)
	if url == "" || !strings.HasPrefix(s[pos:], closer) {
		return tail{}
	}
	return tail{url: url, end: pos + len(closer), ok: true}
}

// bareTail parses `url closer` after a standalone separator at sep.
func (ls *LinkScanner) bareTail(sep int, closer string) tail {
	memo, ok := ls.closers[closer]
	if !ok {
		memo = &searchMemo{}
		ls.closers[closer] = memo
	}

	end := memo.find(sep+len(TokenSeparator), ls.wordFinder(closer))
	if end < 0 {
		return tail{}
	}

	url := strings.TrimSpace(ls.s[sep+len(TokenSeparator) : end])
	if url == "" {
		return tail{}
	}
	return tail{url: url, end: end + len(closer), ok: true}
}

func (ls *LinkScanner) indexBracket(from int) int {
	i := strings.IndexByte(ls.s[from:], ']')
	if i < 0 {
		return -1
	}
	return from + i
}

func (ls *LinkScanner) wordFinder(word string) func(int) int {
	return func(from int) int {
		return findWord(ls.s, from, word)
	}
}

// findWord returns the index of the first occurrence of word at or after
// from that is preceded by whitespace and followed by whitespace or the end
// of s, or -1.
func findWord(s string, from int, word string) int {
	for i := from; i+len(word) <= len(s); i++ {
		if !strings.HasPrefix(s[i:], word) {
			continue
		}
		if i == 0 || !IsSpace(s[i-1]) {
			continue
		}
		if after := i + len(word); after < len(s) && !IsSpace(s[after]) {
			continue
		}
		return i
	}
	return -1
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && IsSpace(s[pos]) {
		pos++
	}
	return pos
}
