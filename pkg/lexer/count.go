package lexer

// CountRun reads prefix at the start of s and counts the marker bytes that
// immediately follow it. It returns 0 when s does not start with prefix or
// no marker follows.
//
// Heading and quote sentinels both encode their level this way.
func CountRun(s string, prefix, marker byte) int {
	if len(s) == 0 || s[0] != prefix {
		return 0
	}

	n := 0
	for i := 1; i < len(s) && s[i] == marker; i++ {
		n++
	}

	return n
}

// ClampLevel bounds n to [1, maxLevel]. The second result is true when n
// was out of range.
func ClampLevel(n, maxLevel int) (int, bool) {
	switch {
	case n < 1:
		return 1, true
	case n > maxLevel:
		return maxLevel, true
	default:
		return n, false
	}
}
