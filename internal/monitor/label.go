package monitor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSource labels pings that arrive without a source.
const DefaultSource = "unknown"

// MaxSourceLen caps label length in runes.
const MaxSourceLen = 64

// NormalizeSource folds compatibility forms (full-width letters, ligatures),
// strips control characters and collapses whitespace. Blank labels become
// DefaultSource.
func NormalizeSource(raw string) string {
	t := transform.Chain(norm.NFKC, runes.Remove(runes.In(unicode.Cc)))
	s, _, err := transform.String(t, raw)
	if err != nil {
		s = raw
	}

	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) > MaxSourceLen {
		s = string([]rune(s)[:MaxSourceLen])
	}
	if s == "" {
		return DefaultSource
	}
	return s
}
