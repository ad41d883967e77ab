package annotate

import (
	"strings"
	"testing"

	"github.com/refalign/refalign/layout"
	"github.com/refalign/refalign/model"
)

func outdatedHighlights(p *pass) []model.Highlight {
	var out []model.Highlight
	for _, h := range p.highlights {
		if h.Color == model.ColorOutdated {
			out = append(out, h)
		}
	}
	return out
}

func TestFlagOutdatedYears_EntryYearFlagged(t *testing.T) {
	page := pageFromLines(1, 100, [][]string{
		{"[3]", "Smith,", "J.", "(1999).", "Old", "methods", "revisited."},
	})

	p := newTestPass(page, layout.MultiColumn)
	p.flagOutdatedYears()

	flagged := outdatedHighlights(p)
	if len(flagged) != 1 {
		t.Fatalf("flagOutdatedYears() emitted %d highlights, want 1", len(flagged))
	}
	if !strings.Contains(flagged[0].Note, "1999") {
		t.Errorf("note = %q, want the year in it", flagged[0].Note)
	}
	if !strings.Contains(flagged[0].Note, "[INVALID]") {
		t.Errorf("note = %q, want [INVALID] marker", flagged[0].Note)
	}
}

func TestFlagOutdatedYears_RecentYearIgnored(t *testing.T) {
	page := pageFromLines(1, 100, [][]string{
		{"[3]", "Smith,", "J.", "(2024).", "Recent", "methods."},
	})

	p := newTestPass(page, layout.MultiColumn)
	p.flagOutdatedYears()

	if flagged := outdatedHighlights(p); len(flagged) != 0 {
		t.Errorf("recent year flagged %d times, want 0", len(flagged))
	}
}

func TestFlagOutdatedYears_QuotedYearExcluded(t *testing.T) {
	page := pageFromLines(1, 100, [][]string{
		{"[3]", `Smith,`, `J.,`, `"The`, "1998", `revolution,"`, "Journal", "of", "History,", "2024."},
	})

	p := newTestPass(page, layout.MultiColumn)
	p.flagOutdatedYears()

	if flagged := outdatedHighlights(p); len(flagged) != 0 {
		t.Errorf("quoted year flagged %d times, want 0", len(flagged))
	}
}

func TestFlagOutdatedYears_DOIYearExcluded(t *testing.T) {
	page := pageFromLines(1, 100, [][]string{
		{"[4]", "Doe,", "A.", "(2024).", "Title.", "doi:", "10.1999/abc.2024"},
	})

	p := newTestPass(page, layout.MultiColumn)
	p.flagOutdatedYears()

	if flagged := outdatedHighlights(p); len(flagged) != 0 {
		t.Errorf("DOI digits flagged %d times, want 0", len(flagged))
	}
}

func TestFlagOutdatedYears_OutsideEntryIgnored(t *testing.T) {
	// Body prose mentioning an old year, no entry shape anywhere nearby.
	page := pageFromLines(1, 100, [][]string{
		{"the", "field", "changed", "after", "1995", "when", "methods", "improved"},
	})

	p := newTestPass(page, layout.MultiColumn)
	p.flagOutdatedYears()

	if flagged := outdatedHighlights(p); len(flagged) != 0 {
		t.Errorf("body-text year flagged %d times, want 0", len(flagged))
	}
}

func TestFlagOutdatedYears_DeduplicatedPerEntry(t *testing.T) {
	// The same old year appears twice within one wrapped entry.
	page := pageFromLines(1, 100, [][]string{
		{"[5]", "Brown,", "C.", "(1990).", "Annual", "report", "1990."},
	})

	p := newTestPass(page, layout.MultiColumn)
	p.flagOutdatedYears()

	if flagged := outdatedHighlights(p); len(flagged) != 1 {
		t.Errorf("duplicate year flagged %d times, want 1", len(flagged))
	}
}

func TestSubstringRect_ProportionalSlice(t *testing.T) {
	rect := model.Rect{X0: 100, Y0: 50, X1: 200, Y1: 62}
	got := substringRect(rect, "(1999).", 1, 5)

	if got.Y0 != 50 || got.Y1 != 62 {
		t.Errorf("substringRect() changed vertical extent: %+v", got)
	}
	if got.X0 <= rect.X0 || got.X1 >= rect.X1 {
		t.Errorf("substringRect() = %+v, want interior slice of %+v", got, rect)
	}
	if got.X1 <= got.X0 {
		t.Errorf("substringRect() produced empty width: %+v", got)
	}
}
