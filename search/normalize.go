package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares text for flexible page matching: unicode
// compatibility normalization (folds ligatures and width variants that
// show up in noisy text layers), line breaks replaced by spaces, runs
// of whitespace collapsed, and surrounding whitespace trimmed.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFKC.String(text)
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeToken normalizes a single word token: NFKC folding plus
// trimming. Tokens contain no internal whitespace by construction.
func NormalizeToken(token string) string {
	return strings.TrimFunc(norm.NFKC.String(token), unicode.IsSpace)
}

// CleanToken reduces a token to its comparable core: NFKC folding,
// lowercasing, and removal of everything that is not a letter or digit.
// Used for token-level matching where punctuation and case must not
// matter, e.g. journal-name comparison.
func CleanToken(token string) string {
	token = strings.ToLower(norm.NFKC.String(token))
	var b strings.Builder
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// prefix returns the first n runes of s, or s itself when shorter.
func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
