package annotate

import (
	"github.com/refalign/refalign/layout"
	"github.com/refalign/refalign/model"
)

// layoutStrategy selects how candidates are gathered for a page. The
// page's detected column layout decides which strategy runs; both feed
// the same resolver so overlap rules are identical either way.
type layoutStrategy interface {
	name() string
	collectCandidates(p *pass, ref model.ReferenceRecord)
}

// multiColumnStrategy locates the full reference entry text with the
// tiered search. Multi-column bibliographies keep entries compact
// enough that full-text spans stay within one column. When the text
// search misses, the entry's leading number marker bounds the span
// instead.
type multiColumnStrategy struct{}

func (multiColumnStrategy) name() string { return "multi_column" }

func (multiColumnStrategy) collectCandidates(p *pass, ref model.ReferenceRecord) {
	if p.searchReference(ref) {
		return
	}
	p.markerFallback(ref)
}

// singleColumnStrategy prefers journal-name token matching, where wide
// entry lines make full-text spans unreliable, then falls back to the
// tiered search and finally to the entry marker.
type singleColumnStrategy struct{}

func (singleColumnStrategy) name() string { return "single_column" }

func (singleColumnStrategy) collectCandidates(p *pass, ref model.ReferenceRecord) {
	if p.matchJournalName(ref) {
		return
	}
	if p.searchReference(ref) {
		return
	}
	p.markerFallback(ref)
}

func strategyFor(kind layout.Kind) layoutStrategy {
	if kind == layout.MultiColumn {
		return multiColumnStrategy{}
	}
	return singleColumnStrategy{}
}
