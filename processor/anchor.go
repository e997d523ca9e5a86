package processor

import "strings"

// AnchorMatcher finds the last occurrence of an anchor line in text. It
// returns the byte offset of the match and whether one was found.
type AnchorMatcher func(text, anchor string) (int, bool)

// Anchor matchers, tried in order by [Search].
var anchorMatchers = []AnchorMatcher{
	MatchExact,
	MatchTrimmed,
	MatchKey,
}

// Search locates anchor in text with each [AnchorMatcher] in turn: the
// exact line, the line without surrounding whitespace, then only the key
// before the first colon.
func Search(text, anchor string) (int, bool) {
	for _, match := range anchorMatchers {
		if idx, ok := match(text, anchor); ok {
			return idx, true
		}
	}

	return -1, false
}

// MatchExact matches the anchor line as-is.
func MatchExact(text, anchor string) (int, bool) {
	return lastIndex(text, anchor)
}

// MatchTrimmed matches the anchor line with surrounding whitespace removed,
// tolerating a change of indentation.
func MatchTrimmed(text, anchor string) (int, bool) {
	return lastIndex(text, strings.TrimSpace(anchor))
}

// MatchKey matches the part of the anchor before its first colon,
// tolerating a change in how the value was written.
func MatchKey(text, anchor string) (int, bool) {
	key, _, found := strings.Cut(anchor, ":")
	if !found {
		return -1, false
	}

	return lastIndex(text, strings.TrimSpace(key))
}

func lastIndex(text, s string) (int, bool) {
	if s == "" {
		return -1, false
	}

	idx := strings.LastIndex(text, s)

	return idx, idx >= 0
}
