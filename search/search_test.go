package search

import (
	"testing"

	"github.com/refalign/refalign/layout"
	"github.com/refalign/refalign/model"
)

// testPage builds a single-block page where each entry in lines is one
// line of words laid out left to right.
func testPage(lines [][]string) model.Page {
	page := model.Page{Width: 612, Height: 792}
	for li, words := range lines {
		x := 50.0
		y := 100.0 + float64(li)*15
		for _, w := range words {
			width := float64(len(w)) * 6
			page.Words = append(page.Words, model.Word{
				Rect:  model.Rect{X0: x, Y0: y, X1: x + width, Y1: y + 12},
				Text:  w,
				Block: 0,
				Line:  li,
			})
			x += width + 5
		}
	}
	return page
}

func newTestSearcher(lines [][]string) *Searcher {
	page := testPage(lines)
	return NewSearcher(layout.NewPageIndex(page))
}

func TestSearcher_Find_SingleOccurrence(t *testing.T) {
	s := newTestSearcher([][]string{
		{"The", "quick", "brown", "fox", "jumps"},
	})

	rects := s.Find("quick brown")
	if len(rects) != 2 {
		t.Fatalf("Find() returned %d rects, want 2", len(rects))
	}
}

func TestSearcher_Find_MultipleOccurrences(t *testing.T) {
	s := newTestSearcher([][]string{
		{"alpha", "beta", "gamma"},
		{"alpha", "beta", "delta"},
	})

	rects := s.Find("alpha beta")
	if len(rects) != 4 {
		t.Errorf("Find() returned %d rects, want 4", len(rects))
	}
}

func TestSearcher_Find_AbsentQuery(t *testing.T) {
	s := newTestSearcher([][]string{
		{"alpha", "beta", "gamma"},
	})

	if rects := s.Find("omega"); rects != nil {
		t.Errorf("Find() on absent query returned %d rects, want nil", len(rects))
	}
}

func TestSearcher_Find_SpansLines(t *testing.T) {
	s := newTestSearcher([][]string{
		{"Journal", "of", "Applied"},
		{"Statistics", "and", "Methods"},
	})

	rects := s.Find("Applied Statistics")
	if len(rects) != 2 {
		t.Errorf("Find() across lines returned %d rects, want 2", len(rects))
	}
}

func TestSearcher_FindReference_RawFullText(t *testing.T) {
	s := newTestSearcher([][]string{
		{"[1]", "Smith,", "J.", "Machine", "learning", "methods", "for", "text."},
	})

	ref := model.ReferenceRecord{
		Number:  1,
		RawText: "Smith, J. Machine learning methods for text.",
	}

	rects, tier, ok := s.FindReference(ref)
	if !ok {
		t.Fatal("FindReference() found nothing, want raw full text match")
	}
	if tier != TierRawFull {
		t.Errorf("tier = %q, want %q", tier, TierRawFull)
	}
	if len(rects) == 0 {
		t.Error("FindReference() returned no rects")
	}
}

func TestSearcher_FindReference_RawLocationWins(t *testing.T) {
	// The clean text matches the unpunctuated rendition on the first
	// line, the raw text the punctuated one on the second. The raw tier
	// runs first, so the second line's location must win.
	s := newTestSearcher([][]string{
		{"Smith", "J", "Machine", "learning", "methods", "for", "text"},
		{"Smith,", "J.", "Machine", "learning", "methods", "for", "text."},
	})

	ref := model.ReferenceRecord{
		Number:    1,
		RawText:   "Smith, J. Machine learning methods for text.",
		CleanText: "Smith J Machine learning methods for text",
	}

	rects, tier, ok := s.FindReference(ref)
	if !ok {
		t.Fatal("FindReference() found nothing, want raw full text match")
	}
	if tier != TierRawFull {
		t.Errorf("tier = %q, want %q", tier, TierRawFull)
	}
	for _, r := range rects {
		if r.Y0 != 115 {
			t.Errorf("rect at Y0 = %v, want 115 (the raw text's line)", r.Y0)
		}
	}
}

func TestSearcher_FindReference_FallsBackToClean(t *testing.T) {
	s := newTestSearcher([][]string{
		{"Smith,", "J.", "Machine", "learning", "methods", "for", "text."},
	})

	// The raw text carries a line break artifact absent from the page,
	// so only the clean tier can match.
	ref := model.ReferenceRecord{
		Number:    1,
		RawText:   "Smith, J. Ma- chine learning methods for text.",
		CleanText: "Smith, J. Machine learning methods for text.",
	}

	_, tier, ok := s.FindReference(ref)
	if !ok {
		t.Fatal("FindReference() found nothing, want clean tier match")
	}
	if tier != TierCleanFull {
		t.Errorf("tier = %q, want %q", tier, TierCleanFull)
	}
}

func TestSearcher_FindReference_ShortTextSkipped(t *testing.T) {
	s := newTestSearcher([][]string{
		{"short", "entry"},
	})

	ref := model.ReferenceRecord{Number: 1, RawText: "short entry", CleanText: "short entry"}
	if _, _, ok := s.FindReference(ref); ok {
		t.Error("FindReference() matched a below-minimum-length source, want skip")
	}
}
