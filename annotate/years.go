package annotate

import (
	"fmt"
	"regexp"

	"github.com/refalign/refalign/layout"
	"github.com/refalign/refalign/model"
)

var yearRe = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

// refEntryLookback is how many preceding lines within the same block
// are checked when deciding whether a year belongs to a reference
// entry. Entries wrap, so the marker line may sit a few lines up.
const refEntryLookback = 5

// flagOutdatedYears scans the page for 4-digit publication years older
// than the configured cutoff and emits one highlight per surviving
// year. A candidate year is excluded when it is recent, sits inside a
// quoted title, belongs to a DOI, or falls outside reference-entry
// context. Per logical reference (keyed by the nearest preceding
// entry line), each distinct year string is highlighted at most once.
func (p *pass) flagOutdatedYears() {
	minYear := p.cfg.minYear()
	seen := make(map[string]map[string]bool)

	for wi := 0; wi < p.index.WordCount(); wi++ {
		word := p.index.Word(wi)
		text := word.Text

		for _, loc := range yearRe.FindAllStringIndex(text, -1) {
			yearStr := text[loc[0]:loc[1]]
			year := parseYear(yearStr)

			if year >= minYear {
				continue
			}
			if isInsideQuotes(p.index, wi) {
				continue
			}
			if isPartOfDOI(p.index, wi) {
				continue
			}
			if !p.inReferenceEntry(wi) {
				continue
			}

			key := p.referenceKey(wi)
			if seen[key] == nil {
				seen[key] = make(map[string]bool)
			}
			if seen[key][yearStr] {
				continue
			}
			seen[key][yearStr] = true

			rect := substringRect(word.Rect, text, loc[0], loc[1])
			if !rect.IsValid() {
				p.log.Warn().Int("page", p.page.Number).Str("year", yearStr).
					Msg("degenerate year rect, occurrence dropped")
				continue
			}

			p.highlights = append(p.highlights, model.Highlight{
				Page:  p.page.Number,
				Rects: []model.Rect{rect},
				Color: model.ColorOutdated,
				Title: "Outdated year",
				Note:  fmt.Sprintf("Year: %s [INVALID]\nMinimum: %d\nStatus: outdated", yearStr, minYear),
			})
			p.log.Debug().Int("page", p.page.Number).Str("year", yearStr).
				Int("min_year", minYear).Msg("outdated year highlighted")
		}
	}
}

// inReferenceEntry reports whether the word's line, or one of the few
// lines above it in the same block, has bibliography-entry shape. This
// keeps years in narrative body text from being flagged.
func (p *pass) inReferenceEntry(wi int) bool {
	line := p.index.LineOfWord(wi)
	if line == nil {
		return false
	}
	if IsReferenceEntryLine(line.Text()) {
		return true
	}
	for offset := 1; offset <= refEntryLookback; offset++ {
		prev := p.index.LineAt(layout.LineKey{Block: line.Key.Block, Line: line.Key.Line - offset})
		if prev != nil && IsReferenceEntryLine(prev.Text()) {
			return true
		}
	}
	return false
}

// referenceKey identifies the logical reference a word belongs to for
// year deduplication: the text of the nearest preceding entry line, or
// a synthetic key from the word's vertical position when none exists.
func (p *pass) referenceKey(wi int) string {
	line := p.index.LineOfWord(wi)
	if line != nil {
		for offset := 0; offset <= refEntryLookback; offset++ {
			prev := p.index.LineAt(layout.LineKey{Block: line.Key.Block, Line: line.Key.Line - offset})
			if prev != nil && IsReferenceEntryLine(prev.Text()) {
				return prev.Text()
			}
		}
	}
	return fmt.Sprintf("ref_at_y_%.1f", p.index.Word(wi).Rect.Y0)
}

// substringRect sizes a rectangle to the matched byte span [start, end)
// of the word's text, interpolating horizontally across the word box.
func substringRect(word model.Rect, text string, start, end int) model.Rect {
	if len(text) == 0 {
		return word
	}
	width := word.Width()
	startRatio := float64(start) / float64(len(text))
	endRatio := float64(end) / float64(len(text))
	return model.Rect{
		X0: word.X0 + width*startRatio,
		Y0: word.Y0,
		X1: word.X0 + width*endRatio,
		Y1: word.Y1,
	}
}

func parseYear(s string) int {
	year := 0
	for _, ch := range s {
		year = year*10 + int(ch-'0')
	}
	return year
}
