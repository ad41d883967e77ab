package annotate

import (
	"testing"

	"github.com/refalign/refalign/layout"
	"github.com/refalign/refalign/model"
)

func TestJournalTokens(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Journal of Applied Statistics", 4},
		{"The Lancet", 1},
		{"", 0},
		{"IEEE Access", 2},
	}

	for _, tt := range tests {
		if got := journalTokens(tt.in); len(got) != tt.want {
			t.Errorf("journalTokens(%q) = %v, want %d tokens", tt.in, got, tt.want)
		}
	}
}

func TestMatchJournalName_BasicMatch(t *testing.T) {
	page := pageFromLines(1, 300, [][]string{
		{"Smith,", "J.", "Some", "title.", "Journal", "of", "Applied", "Statistics,", "12(3)."},
	})

	p := newTestPass(page, layout.SingleColumn)
	ref := model.ReferenceRecord{
		Number:      1,
		JournalName: "Journal of Applied Statistics",
		Type:        model.RefJournal,
	}

	if !p.matchJournalName(ref) {
		t.Fatal("matchJournalName() found nothing, want a token match")
	}
	if len(p.candidates[1]) == 0 {
		t.Fatal("no candidate recorded for the match")
	}
	if p.candidates[1][0].strategy != "journal_tokens" {
		t.Errorf("strategy = %q, want 'journal_tokens'", p.candidates[1][0].strategy)
	}
}

func TestMatchJournalName_CaseAndPunctuationInsensitive(t *testing.T) {
	page := pageFromLines(1, 300, [][]string{
		{"in", "JOURNAL", "OF", "APPLIED", "STATISTICS;", "vol.", "4."},
	})

	p := newTestPass(page, layout.SingleColumn)
	ref := model.ReferenceRecord{Number: 2, JournalName: "Journal of Applied Statistics"}

	if !p.matchJournalName(ref) {
		t.Error("matchJournalName() should ignore case and trailing punctuation")
	}
}

func TestMatchJournalName_QuotedTitleRejected(t *testing.T) {
	// The journal name appears inside a quoted article title, below the
	// top header band.
	page := pageFromLines(1, 300, [][]string{
		{"Doe,", "A.", `"Trends`, "in", "Nature", `research,"`, "elsewhere."},
	})

	p := newTestPass(page, layout.SingleColumn)
	ref := model.ReferenceRecord{Number: 3, JournalName: "Nature"}

	if p.matchJournalName(ref) {
		t.Error("matchJournalName() accepted a quoted-title occurrence")
	}
}

func TestMatchJournalName_ClaimedWordsNotReused(t *testing.T) {
	page := pageFromLines(1, 300, [][]string{
		{"Published", "in", "Nature", "last", "year."},
	})

	p := newTestPass(page, layout.SingleColumn)
	ref1 := model.ReferenceRecord{Number: 1, JournalName: "Nature"}
	ref2 := model.ReferenceRecord{Number: 2, JournalName: "Nature"}

	if !p.matchJournalName(ref1) {
		t.Fatal("first reference should match")
	}
	if p.matchJournalName(ref2) {
		t.Error("second reference reused words already claimed by the first")
	}
}

func TestMatchJournalName_NoJournalName(t *testing.T) {
	page := pageFromLines(1, 300, [][]string{
		{"Nothing", "to", "see", "here."},
	})

	p := newTestPass(page, layout.SingleColumn)
	if p.matchJournalName(model.ReferenceRecord{Number: 4}) {
		t.Error("matchJournalName() matched with an empty journal name")
	}
}
