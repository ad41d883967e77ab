package annotate

import (
	"regexp"
	"strings"

	"github.com/refalign/refalign/layout"
)

// quoteChars covers ASCII and typographic quotation marks; closing
// variants are a superset used when scanning backward for the end of a
// quoted title.
var (
	quoteChars      = []rune{'"', '“', '”', '‘', '’', '\''}
	quoteCloseChars = []rune{'"', '”', '’', '\'', '»', '›'}

	doiPrefixRe = regexp.MustCompile(`^10\.\d{4,}`)
)

func containsAnyRune(s string, set []rune) bool {
	for _, ch := range set {
		if strings.ContainsRune(s, ch) {
			return true
		}
	}
	return false
}

// isInsideQuotes reports whether the word at stream index wi sits
// between an opening and a closing quotation mark on its own line.
// Years and journal tokens inside quoted article titles must not be
// highlighted.
//
// Rule: the line must contain at least two quote characters; the
// word's character offset within the line text (words joined by single
// spaces) must fall strictly between the first and last quote
// positions.
func isInsideQuotes(idx *layout.PageIndex, wi int) bool {
	line := idx.LineOfWord(wi)
	if line == nil {
		return false
	}

	lineText := line.Text()
	quoteCount := 0
	for _, ch := range quoteChars {
		quoteCount += strings.Count(lineText, string(ch))
	}
	if quoteCount < 2 {
		return false
	}

	firstQuote, lastQuote := -1, -1
	for i, ch := range lineText {
		for _, q := range quoteChars {
			if ch == q {
				if firstQuote == -1 {
					firstQuote = i
				}
				lastQuote = i
			}
		}
	}
	if firstQuote == -1 || lastQuote == firstQuote {
		return false
	}

	rel := -1
	for i, idx2 := range line.WordIndices {
		if idx2 == wi {
			rel = i
			break
		}
	}
	if rel < 0 {
		return false
	}

	charsBefore := 0
	for _, w := range line.Words[:rel] {
		charsBefore += len(w) + 1
	}
	return firstQuote < charsBefore && charsBefore < lastQuote
}

// hasQuotesNearby reports whether any quote character appears on the
// word's line or its immediate neighbor lines within the same block.
func hasQuotesNearby(idx *layout.PageIndex, wi int) bool {
	line := idx.LineOfWord(wi)
	if line == nil {
		return false
	}
	for dl := -1; dl <= 1; dl++ {
		neighbor := idx.LineAt(layout.LineKey{Block: line.Key.Block, Line: line.Key.Line + dl})
		if neighbor != nil && containsAnyRune(neighbor.Text(), quoteChars) {
			return true
		}
	}
	return false
}

// appearsAfterClosingQuote reports whether a closing quote character
// occurs within the twenty words preceding the given word. A journal
// name directly after a quoted title is the normal citation shape, so
// nearby quotes alone must not veto the match.
func appearsAfterClosingQuote(idx *layout.PageIndex, wi int) bool {
	for i := wi - 1; i >= 0 && i >= wi-20; i-- {
		if containsAnyRune(idx.Word(i).Text, quoteCloseChars) {
			return true
		}
	}
	return false
}

// isPartOfDOI reports whether the word at stream index wi belongs to a
// DOI identifier: the word itself carries a "doi:" tag or a 10.NNNN
// prefix, or one of the five preceding words does.
func isPartOfDOI(idx *layout.PageIndex, wi int) bool {
	current := strings.ToLower(idx.Word(wi).Text)
	if strings.Contains(current, "doi:") || strings.HasPrefix(current, "10.") {
		return true
	}
	for offset := 1; offset <= 5; offset++ {
		if wi-offset < 0 {
			break
		}
		prev := strings.ToLower(idx.Word(wi - offset).Text)
		if strings.Contains(prev, "doi") {
			return true
		}
		if doiPrefixRe.MatchString(prev) {
			return true
		}
	}
	return false
}
