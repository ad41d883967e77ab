package annotate

import (
	"strings"

	"github.com/refalign/refalign/model"
	"github.com/refalign/refalign/search"
)

// journalStopWords end a match window: once one appears the journal
// name is over and the words belong to the surrounding citation.
var journalStopWords = map[string]bool{
	"in":          true,
	"proceedings": true,
	"conference":  true,
	"symposium":   true,
	"report":      true,
	"book":        true,
}

// nearTopY is the vertical band, measured from the page top, where
// quoted text is treated as a running header rather than a cited title.
const nearTopY = 150.0

// jaccardMin is the minimum token overlap required to accept a match
// that directly follows a closing quote.
const jaccardMin = 0.6

// journalTokens splits a journal name into normalized comparison
// tokens, dropping leading articles that citation styles often omit.
func journalTokens(name string) []string {
	fields := strings.Fields(name)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := search.CleanToken(f)
		if t == "" {
			continue
		}
		if len(tokens) == 0 && (t == "the" || t == "a" || t == "an") {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// matchJournalName scans the page's word stream for runs of words whose
// normalized tokens reproduce the reference's journal name in order.
// Words already claimed by another reference are skipped, quoted
// matches are rejected outside the top header band, and a match that
// follows a closing quote must also share most of its line's tokens
// with the reference text. Each surviving run claims its words and
// yields one candidate group.
func (p *pass) matchJournalName(ref model.ReferenceRecord) bool {
	tokens := journalTokens(ref.JournalName)
	if len(tokens) == 0 {
		return false
	}

	found := false
	total := p.index.WordCount()
	for wi := 0; wi < total; wi++ {
		if p.usedWords[wi] {
			continue
		}
		end, ok := p.matchTokensAt(wi, tokens)
		if !ok {
			continue
		}

		startWord := p.index.Word(wi)
		if hasQuotesNearby(p.index, wi) && isInsideQuotes(p.index, wi) && startWord.Rect.Y0 >= nearTopY {
			continue
		}
		if appearsAfterClosingQuote(p.index, wi) && !p.lineMatchesReference(wi, ref) {
			continue
		}

		end = p.extendWindow(end)

		rects := make([]model.Rect, 0, end-wi)
		for j := wi; j < end; j++ {
			p.usedWords[j] = true
			rects = append(rects, p.index.Word(j).Rect)
		}
		merged := search.MergeCloseRects(rects, p.cfg.RectMergeGap)
		p.addCandidate(ref, merged, "journal_tokens")
		found = true
		wi = end - 1
	}
	return found
}

// matchTokensAt matches the token sequence against words starting at
// wi, returning the exclusive end index. A single-token name may also
// match the concatenation of two adjacent words, which handles titles
// split by hyphenation.
func (p *pass) matchTokensAt(wi int, tokens []string) (int, bool) {
	total := p.index.WordCount()
	j := wi
	for _, token := range tokens {
		if j >= total {
			return 0, false
		}
		wordTok := search.CleanToken(p.index.Word(j).Text)
		if wordTok == token {
			j++
			continue
		}
		if len(tokens) == 1 && j+1 < total {
			joined := wordTok + search.CleanToken(p.index.Word(j+1).Text)
			if joined == token {
				return j + 2, true
			}
		}
		return 0, false
	}
	return j, true
}

// extendWindow grows a matched run across trailing words on the same
// line that still belong to the journal title, stopping at stop words,
// years, or a line change.
func (p *pass) extendWindow(end int) int {
	total := p.index.WordCount()
	if end == 0 || end >= total {
		return end
	}
	line := p.index.LineOfWord(end - 1)
	for end < total {
		if p.usedWords[end] {
			break
		}
		if p.index.LineOfWord(end) != line {
			break
		}
		tok := search.CleanToken(p.index.Word(end).Text)
		if tok == "" || journalStopWords[tok] || yearRe.MatchString(tok) {
			break
		}
		end++
	}
	return end
}

// lineMatchesReference compares the token sets of the word's line and
// the reference's searchable text, accepting when the Jaccard overlap
// clears the minimum.
func (p *pass) lineMatchesReference(wi int, ref model.ReferenceRecord) bool {
	line := p.index.LineOfWord(wi)
	if line == nil {
		return false
	}
	lineSet := tokenSet(line.Text())
	refSet := tokenSet(ref.SearchText())
	if len(lineSet) == 0 || len(refSet) == 0 {
		return false
	}

	inter := 0
	for t := range lineSet {
		if refSet[t] {
			inter++
		}
	}
	union := len(lineSet) + len(refSet) - inter
	return float64(inter)/float64(union) >= jaccardMin
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, f := range strings.Fields(text) {
		if t := search.CleanToken(f); t != "" {
			set[t] = true
		}
	}
	return set
}
