package annotate

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/refalign/refalign/layout"
	"github.com/refalign/refalign/model"
	"github.com/refalign/refalign/search"
)

// candidate is one possible highlight placement for a reference on the
// current page: a rectangle group plus the strategy that produced it.
type candidate struct {
	ref      model.ReferenceRecord
	rects    []model.Rect
	strategy string
	area     float64
}

// placed is an accepted highlight placement awaiting emission.
type placed struct {
	ref      model.ReferenceRecord
	rects    []model.Rect
	strategy string
	area     float64
	degraded bool
}

// pass owns all state for annotating a single page. It is constructed
// fresh per page and discarded when the page completes, so nothing can
// leak between pages except the explicit DocState.
type pass struct {
	cfg      Config
	log      zerolog.Logger
	page     model.Page
	index    *layout.PageIndex
	searcher *search.Searcher
	kind     layout.Kind
	strategy layoutStrategy

	// candidates collects placements per reference number before
	// resolution; usedWords backs the journal token matcher's claim
	// of word indices within the page.
	candidates map[int][]*candidate
	usedWords  map[int]bool

	markers       []Marker
	markersLoaded bool

	highlights []model.Highlight
}

func newPass(cfg Config, log zerolog.Logger, page model.Page, index *layout.PageIndex, kind layout.Kind, strategy layoutStrategy) *pass {
	return &pass{
		cfg:        cfg,
		log:        log,
		page:       page,
		index:      index,
		searcher:   search.NewSearcher(index),
		kind:       kind,
		strategy:   strategy,
		candidates: make(map[int][]*candidate),
		usedWords:  make(map[int]bool),
	}
}

// addCandidate records a placement candidate, dropping groups whose
// geometry is unusable.
func (p *pass) addCandidate(ref model.ReferenceRecord, rects []model.Rect, strategy string) {
	valid := rects[:0:0]
	for _, r := range rects {
		if r.IsValid() {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		p.log.Warn().Int("page", p.page.Number).Int("ref", ref.Number).
			Str("strategy", strategy).Msg("candidate dropped, no usable geometry")
		return
	}
	p.candidates[ref.Number] = append(p.candidates[ref.Number], &candidate{
		ref:      ref,
		rects:    valid,
		strategy: strategy,
		area:     model.GroupArea(valid),
	})
}

// searchReference runs the shared tiered candidate search for one
// reference and turns raw hits into occurrence candidates.
func (p *pass) searchReference(ref model.ReferenceRecord) bool {
	if len(ref.SearchText()) < 10 {
		p.log.Warn().Int("page", p.page.Number).Int("ref", ref.Number).
			Msg("reference text too short to search")
		return false
	}

	rects, tier, ok := p.searcher.FindReference(ref)
	if !ok {
		p.log.Debug().Int("page", p.page.Number).Int("ref", ref.Number).
			Msg("reference not found on page")
		return false
	}

	merged := search.MergeCloseRects(rects, p.cfg.RectMergeGap)
	groups := search.GroupByProximity(merged, p.cfg.RectGroupMaxVertical, p.cfg.RectGroupMaxHorizontalGap)
	for _, group := range groups {
		p.addCandidate(ref, group, string(tier))
	}

	p.log.Debug().Int("page", p.page.Number).Int("ref", ref.Number).
		Str("tier", string(tier)).Int("occurrences", len(groups)).
		Msg("reference located")
	return len(groups) > 0
}

// pageMarkers lazily extracts the page's entry markers.
func (p *pass) pageMarkers() []Marker {
	if !p.markersLoaded {
		p.markers = CollectMarkers(p.page.Words)
		p.markersLoaded = true
	}
	return p.markers
}

// markerFallback locates a reference by its leading entry marker when
// text search failed: the words between the marker and the next one, in
// the marker's block, become the candidate span.
func (p *pass) markerFallback(ref model.ReferenceRecord) bool {
	var marker *Marker
	for i := range p.pageMarkers() {
		if p.markers[i].Num == ref.Number {
			marker = &p.markers[i]
			break
		}
	}
	if marker == nil {
		return false
	}

	block := p.page.Words[marker.WordIndex].Block
	var rects []model.Rect
	for wi, w := range p.page.Words {
		if w.Block != block || wi < marker.WordIndex {
			continue
		}
		if marker.NextY > 0 && w.Rect.Y0 >= marker.NextY {
			continue
		}
		if w.Rect.Y0 < marker.Y {
			continue
		}
		rects = append(rects, w.Rect)
	}
	if len(rects) == 0 {
		return false
	}

	merged := search.MergeCloseRects(rects, p.cfg.RectMergeGap)
	p.addCandidate(ref, merged, "marker_span")
	p.log.Debug().Int("page", p.page.Number).Int("ref", ref.Number).
		Msg("reference located by entry marker")
	return true
}

// collectCandidates produces placement candidates for every reference,
// longest search text first so complete entries get first claim on
// shared word runs.
func (p *pass) collectCandidates(refs []model.ReferenceRecord) {
	ordered := make([]model.ReferenceRecord, len(refs))
	copy(ordered, refs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].SearchText()) > len(ordered[j].SearchText())
	})

	for _, ref := range ordered {
		p.strategy.collectCandidates(p, ref)
	}
}

// emit converts resolved placements into highlights, ordered by
// reference number. Emission never mutates an existing highlight.
func (p *pass) emit(accepted []*placed) {
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].ref.Number < accepted[j].ref.Number
	})

	for _, pl := range accepted {
		p.highlights = append(p.highlights, model.Highlight{
			Page:  p.page.Number,
			Rects: pl.rects,
			Color: colorFor(pl.ref),
			Title: titleFor(pl.ref),
			Note:  noteFor(pl.ref),
			Ref:   pl.ref.Number,
		})
	}
}
