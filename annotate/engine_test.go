package annotate

import (
	"strings"
	"testing"

	"github.com/refalign/refalign/model"
)

// bibliographyPage lays out a heading plus numbered entries the way a
// single-block page would carry them.
func bibliographyPage(number int) model.Page {
	return pageFromLines(number, 100, [][]string{
		{"REFERENCES"},
		{"[1]", "Smith,", "J.", "Machine", "learning", "methods", "for", "text", "analysis."},
		{"[2]", "Doe,", "A.", "Deep", "models", "in", "clinical", "practice", "today."},
	})
}

func testRefs() []model.ReferenceRecord {
	return []model.ReferenceRecord{
		{
			Number:         1,
			RawText:        "Smith, J. Machine learning methods for text analysis.",
			CleanText:      "Smith, J. Machine learning methods for text analysis.",
			JournalName:    "Journal of Text Analysis",
			Type:           model.RefJournal,
			Year:           2023,
			Indexed:        true,
			IndexedScimago: true,
			Quartile:       model.Q2,
			Status:         model.StatusValid,
		},
		{
			Number:    2,
			RawText:   "Doe, A. Deep models in clinical practice today.",
			CleanText: "Doe, A. Deep models in clinical practice today.",
			Type:      model.RefBook,
			Year:      2022,
			Status:    model.StatusValid,
		},
	}
}

func newTestEngine() *Engine {
	cfg := DefaultConfig()
	cfg.CurrentYear = 2026
	return NewEngineWithConfig(cfg)
}

func TestEngine_AnnotateDocument_ReferencesLocated(t *testing.T) {
	e := newTestEngine()
	highlights := e.AnnotateDocument([]model.Page{bibliographyPage(1)}, testRefs())

	var ref1, ref2 *model.Highlight
	for i := range highlights {
		switch highlights[i].Ref {
		case 1:
			ref1 = &highlights[i]
		case 2:
			ref2 = &highlights[i]
		}
	}

	if ref1 == nil {
		t.Fatal("reference 1 not highlighted")
	}
	if ref1.Color != model.ColorIndexed {
		t.Errorf("ref 1 color = %q, want %q", ref1.Color, model.ColorIndexed)
	}
	if !strings.Contains(ref1.Note, "ScimagoJR (Q2)") {
		t.Errorf("ref 1 note = %q, want quartile badge", ref1.Note)
	}

	if ref2 == nil {
		t.Fatal("reference 2 not highlighted")
	}
	if ref2.Color != model.ColorOther {
		t.Errorf("ref 2 color = %q, want %q", ref2.Color, model.ColorOther)
	}
}

func TestEngine_AnnotateDocument_SummaryAttachedOnce(t *testing.T) {
	e := newTestEngine()
	// The bibliography spills onto a second page; the summary must fire
	// on the heading page only, while entries on the continuation page
	// are still annotated.
	pages := []model.Page{
		bibliographyPage(1),
		pageFromLines(2, 100, [][]string{
			{"[2]", "Doe,", "A.", "Deep", "models", "in", "clinical", "practice", "today."},
		}),
	}
	highlights := e.AnnotateDocument(pages, testRefs())

	summaries := 0
	ref2OnPage2 := false
	for _, h := range highlights {
		if h.Color == model.ColorSummary {
			summaries++
			if h.Page != 1 {
				t.Errorf("summary attached on page %d, want 1", h.Page)
			}
		}
		if h.Ref == 2 && h.Page == 2 {
			ref2OnPage2 = true
		}
	}
	if summaries != 1 {
		t.Errorf("summary attached %d times, want exactly 1", summaries)
	}
	if !ref2OnPage2 {
		t.Error("continuation page entry not annotated")
	}
}

func TestEngine_AnnotateDocument_SummaryContent(t *testing.T) {
	e := newTestEngine()
	highlights := e.AnnotateDocument([]model.Page{bibliographyPage(1)}, testRefs())

	var summary *model.Highlight
	for i := range highlights {
		if highlights[i].Color == model.ColorSummary {
			summary = &highlights[i]
		}
	}
	if summary == nil {
		t.Fatal("no summary highlight emitted")
	}

	for _, want := range []string{"Total references: 2", "Journal: 1", "ScimagoJR: 1", "Q2:1"} {
		if !strings.Contains(summary.Note, want) {
			t.Errorf("summary note missing %q:\n%s", want, summary.Note)
		}
	}
}

func TestEngine_AnnotateDocument_EmptyPagesSkipped(t *testing.T) {
	e := newTestEngine()
	pages := []model.Page{
		{Number: 1, Width: 612, Height: 792},
		bibliographyPage(2),
	}

	highlights := e.AnnotateDocument(pages, testRefs())
	for _, h := range highlights {
		if h.Page == 1 {
			t.Errorf("highlight emitted for empty page: %+v", h)
		}
	}
	if len(highlights) == 0 {
		t.Error("non-empty page produced no highlights")
	}
}

func TestEngine_AnnotateDocument_NoReferencesOnPage(t *testing.T) {
	e := newTestEngine()
	page := pageFromLines(1, 100, [][]string{
		{"This", "page", "discusses", "methodology", "in", "great", "detail."},
	})

	highlights := e.AnnotateDocument([]model.Page{page}, testRefs())
	for _, h := range highlights {
		if h.Ref != 0 {
			t.Errorf("reference highlight on a page without references: %+v", h)
		}
	}
}

func TestEngine_AnnotateDocument_NoHeadingNoHighlights(t *testing.T) {
	e := newTestEngine()
	// The entries match the records and carry an outdated year, but no
	// bibliography heading ever validates, so nothing may be annotated.
	page := pageFromLines(1, 100, [][]string{
		{"[1]", "Smith,", "J.", "Machine", "learning", "methods", "for", "text", "analysis."},
		{"[2]", "Doe,", "A.", "Legacy", "methods", "survey", "from", "(1999)."},
	})

	highlights := e.AnnotateDocument([]model.Page{page}, testRefs())
	if len(highlights) != 0 {
		t.Fatalf("headingless document produced %d highlights, want 0: %+v", len(highlights), highlights)
	}
}

func TestEngine_AnnotateDocument_ContentsHeadingRejected(t *testing.T) {
	e := newTestEngine()
	// Page 1 is a table of contents whose "References" line is followed
	// by numbered entries, enough to satisfy the line-local validation.
	// The scored section locator must still prefer the real heading on
	// page 2, so the summary and all reference highlights land there.
	toc := pageFromLines(1, 100, [][]string{
		{"Contents"},
		{"References"},
		{"1.", "Introduction", "and", "overview", "of", "the", "problem"},
		{"2.", "Background", "and", "related", "work", "in", "the", "field"},
		{"3.", "Methods", "used", "throughout", "the", "study"},
		{"4.", "Results", "and", "discussion", "of", "findings"},
		{"5.", "Conclusion", "and", "future", "work"},
	})
	pages := []model.Page{toc, bibliographyPage(2)}

	highlights := e.AnnotateDocument(pages, testRefs())
	if len(highlights) == 0 {
		t.Fatal("document with a real bibliography produced no highlights")
	}
	summaryPage := 0
	for _, h := range highlights {
		if h.Page == 1 {
			t.Errorf("highlight emitted on the contents page: %+v", h)
		}
		if h.Color == model.ColorSummary {
			summaryPage = h.Page
		}
	}
	if summaryPage != 2 {
		t.Errorf("summary attached on page %d, want 2", summaryPage)
	}
}

func TestEngine_AnnotateDocument_MarkerFallback(t *testing.T) {
	e := newTestEngine()
	// The entry text on the page diverges from the record (heavy
	// ligature damage), but the [7] marker is intact.
	page := pageFromLines(1, 100, [][]string{
		{"REFERENCES"},
		{"[7]", "Gar\ufb01eld,", "E.", "Citation", "indexing", "theory", "(2019)"},
	})

	refs := []model.ReferenceRecord{{
		Number:    7,
		RawText:   "Completely different wording that matches nothing on the page at all.",
		CleanText: "Completely different wording that matches nothing on the page at all.",
		Type:      model.RefJournal,
		Indexed:   true,
		Status:    model.StatusValid,
	}}

	highlights := e.AnnotateDocument([]model.Page{page}, refs)
	found := false
	for _, h := range highlights {
		if h.Ref == 7 {
			found = true
			if h.Color != model.ColorIndexed {
				t.Errorf("ref 7 color = %q, want %q", h.Color, model.ColorIndexed)
			}
		}
	}
	if !found {
		t.Error("marker fallback did not place reference 7")
	}
}
