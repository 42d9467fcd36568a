package lexer

// Fixed sentinel tokens.
const (
	TokenBold           = "js"
	TokenBoldClose      = "sj"
	TokenItalic         = "jd"
	TokenItalicClose    = "dj"
	TokenUnderline      = "ju"
	TokenUnderlineClose = "uj"
	TokenUnorderedItem  = "ja"
	TokenOrderedItem    = "jl"
	TokenFenceOpen      = "jkd"
	TokenFenceClose     = "dkj"
	TokenLink           = "jg"
	TokenLinkClose      = "hg"
	TokenImage          = "jh"
	TokenImageClose     = "hj"
	TokenSeparator      = "gh"
	TokenRule           = TokenBold
)

// Counted sentinel prefixes and markers.
const (
	HeadingPrefix = 'j'
	HeadingMarker = 'f'
	QuotePrefix   = 'k'
	QuoteMarker   = 'l'
)

// CloserFor returns the closing token paired with an inline opener, or ""
// when tok is not a paired opener.
func CloserFor(tok string) string {
	switch tok {
	case TokenBold:
		return TokenBoldClose
	case TokenItalic:
		return TokenItalicClose
	case TokenUnderline:
		return TokenUnderlineClose
	case TokenLink:
		return TokenLinkClose
	case TokenImage:
		return TokenImageClose
	default:
		return ""
	}
}

// IsSpace reports whether b is ASCII whitespace.
func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}
