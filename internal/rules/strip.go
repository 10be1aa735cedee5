package rules

import (
	"strings"
	"unicode"
)

// Class reports whether a rune belongs to a strip class.
//
// Two classes are needed because the two free-text normalizations differ:
// gender text tolerates no spacing at all, while country names must keep
// their interior single spaces ("United States") and only shed embedded
// line breaks.
type Class func(r rune) bool

// LineBreaks matches carriage returns and line feeds only.
func LineBreaks(r rune) bool {
	return r == '\n' || r == '\r'
}

// WhitespaceAndControl matches every whitespace and control character.
func WhitespaceAndControl(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

// Strip removes every rune of the given class from s. The result is not
// additionally trimmed; callers that want surrounding whitespace gone
// compose with strings.TrimSpace.
func Strip(s string, class Class) string {
	if !strings.ContainsFunc(s, class) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !class(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
