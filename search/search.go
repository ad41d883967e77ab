package search

import (
	"strings"

	"github.com/refalign/refalign/layout"
	"github.com/refalign/refalign/model"
)

// Tier identifies which fallback level of the candidate search produced
// a match. Callers record the tier for diagnostics: full-text tiers are
// high fidelity, short prefixes are a last resort.
type Tier string

const (
	TierRawFull   Tier = "raw_full_text"
	TierRaw150    Tier = "raw_prefix_150"
	TierRaw80     Tier = "raw_prefix_80"
	TierRaw40     Tier = "raw_prefix_40"
	TierCleanFull Tier = "clean_full_text"
	TierClean150  Tier = "clean_prefix_150"
	TierClean80   Tier = "clean_prefix_80"
	TierClean40   Tier = "clean_prefix_40"
	TierClean30   Tier = "clean_prefix_30"
)

// minSearchLen is the minimum query length for the full-text tiers.
// Shorter reference texts are too ambiguous to match verbatim.
const minSearchLen = 20

// Searcher locates query strings on one page and maps matches back to
// word bounding boxes. It is built once per page from the page index
// and holds a normalized text layer with per-word offsets.
type Searcher struct {
	index *layout.PageIndex

	// layer is the normalized page text: normalized words joined by
	// single spaces in line order.
	layer string

	// wordStarts[i] and wordEnds[i] are the rune offsets of the i-th
	// layer word within layer; wordRects and wordIndices are parallel.
	wordStarts  []int
	wordEnds    []int
	wordRects   []model.Rect
	wordIndices []int
}

// NewSearcher builds the searchable text layer for a page.
func NewSearcher(index *layout.PageIndex) *Searcher {
	s := &Searcher{index: index}

	var sb strings.Builder
	offset := 0
	for _, line := range index.Lines {
		for i, wi := range line.WordIndices {
			token := NormalizeToken(line.Words[i])
			if token == "" {
				continue
			}
			if offset > 0 {
				sb.WriteString(" ")
				offset++
			}
			s.wordStarts = append(s.wordStarts, offset)
			offset += len([]rune(token))
			s.wordEnds = append(s.wordEnds, offset)
			s.wordRects = append(s.wordRects, line.Rects[i])
			s.wordIndices = append(s.wordIndices, wi)
			sb.WriteString(token)
		}
	}
	s.layer = sb.String()
	return s
}

// Find returns the word rectangles covering every occurrence of the
// normalized query on the page. Matching is exact and case sensitive;
// a word is included when its text overlaps the matched span. Returns
// nil when the query is empty or absent.
func (s *Searcher) Find(query string) []model.Rect {
	query = Normalize(query)
	if query == "" {
		return nil
	}

	layerRunes := []rune(s.layer)
	queryRunes := []rune(query)
	var rects []model.Rect

	for at := 0; at+len(queryRunes) <= len(layerRunes); {
		pos := indexRunes(layerRunes[at:], queryRunes)
		if pos < 0 {
			break
		}
		start := at + pos
		end := start + len(queryRunes)
		rects = append(rects, s.rectsInSpan(start, end)...)
		at = end
	}
	return rects
}

// FindReference runs the tiered search for one reference record,
// attempting each tier in strict priority order and stopping at the
// first tier that yields hits. Returns the raw word rectangles, the
// tier that fired, and whether anything matched at all.
func (s *Searcher) FindReference(ref model.ReferenceRecord) ([]model.Rect, Tier, bool) {
	raw := ref.RawText
	clean := ref.CleanText

	type attempt struct {
		tier   Tier
		query  string
		minLen int
	}

	attempts := []attempt{
		{TierRawFull, raw, minSearchLen},
		{TierRaw150, prefix(raw, 150), 150},
		{TierRaw80, prefix(raw, 80), 80},
		{TierRaw40, prefix(raw, 40), 40},
		{TierCleanFull, clean, minSearchLen},
		{TierClean150, prefix(clean, 150), 150},
		{TierClean80, prefix(clean, 80), 80},
		{TierClean40, prefix(clean, 40), 40},
		{TierClean30, prefix(clean, 30), 30},
	}

	for _, a := range attempts {
		source := raw
		if strings.HasPrefix(string(a.tier), "clean") {
			source = clean
		}
		if len([]rune(source)) <= a.minLen {
			continue
		}
		if rects := s.Find(a.query); len(rects) > 0 {
			return rects, a.tier, true
		}
	}
	return nil, "", false
}

// rectsInSpan returns the rectangles of all layer words overlapping the
// rune span [start, end).
func (s *Searcher) rectsInSpan(start, end int) []model.Rect {
	var rects []model.Rect
	for i := range s.wordStarts {
		if s.wordEnds[i] > start && s.wordStarts[i] < end {
			rects = append(rects, s.wordRects[i])
		}
	}
	return rects
}

// indexRunes returns the index of the first occurrence of needle in
// haystack, in runes, or -1.
func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	idx := strings.Index(string(haystack), string(needle))
	if idx < 0 {
		return -1
	}
	return len([]rune(string(haystack)[:idx]))
}
