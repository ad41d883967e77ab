package annotate

import (
	"sort"

	"github.com/refalign/refalign/model"
)

// resolve turns the collected candidates into a non-overlapping set of
// placements. References are considered in ascending number order, and
// within a reference its occurrence candidates largest-area first, with
// top-left-most position breaking ties so resolution is deterministic.
//
// A candidate is blocked when it overlaps an already accepted placement
// by more than the configured percentage of the smaller group's area
// and the accepted placement is at least as large. When the candidate
// is the larger of the two, it wins and the smaller placements it
// overlaps are retracted before emission. A reference whose every
// occurrence is blocked falls back to its largest occurrence, logged as
// degraded, so validated references never silently vanish.
func (p *pass) resolve() []*placed {
	numbers := make([]int, 0, len(p.candidates))
	for n := range p.candidates {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	var accepted []*placed
	for _, n := range numbers {
		cands := p.candidates[n]
		sortCandidates(cands)

		chosen := p.place(cands, &accepted)
		if chosen == nil && len(cands) > 0 {
			fallback := cands[0]
			accepted = append(accepted, &placed{
				ref:      fallback.ref,
				rects:    fallback.rects,
				strategy: fallback.strategy,
				area:     fallback.area,
				degraded: true,
			})
			p.log.Warn().Int("page", p.page.Number).Int("ref", fallback.ref.Number).
				Msg("all occurrences blocked, placing largest anyway")
		}
	}
	return accepted
}

// place tries each candidate in order and commits the first that
// survives overlap checks, evicting any smaller accepted placements the
// winner overlaps. Returns nil when every candidate is blocked.
func (p *pass) place(cands []*candidate, accepted *[]*placed) *placed {
	for _, cand := range cands {
		blocked := false
		for _, prior := range *accepted {
			if !model.GroupsOverlap(prior.rects, cand.rects, p.cfg.OverlapThresholdPercent) {
				continue
			}
			if prior.area >= cand.area {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		kept := (*accepted)[:0]
		for _, prior := range *accepted {
			if model.GroupsOverlap(prior.rects, cand.rects, p.cfg.OverlapThresholdPercent) {
				p.log.Debug().Int("page", p.page.Number).
					Int("evicted_ref", prior.ref.Number).Int("ref", cand.ref.Number).
					Msg("smaller placement retracted for larger occurrence")
				continue
			}
			kept = append(kept, prior)
		}

		pl := &placed{
			ref:      cand.ref,
			rects:    cand.rects,
			strategy: cand.strategy,
			area:     cand.area,
		}
		*accepted = append(kept, pl)
		return pl
	}
	return nil
}

// sortCandidates orders a reference's occurrence candidates by area
// descending, then by top-left position ascending.
func sortCandidates(cands []*candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].area != cands[j].area {
			return cands[i].area > cands[j].area
		}
		bi := model.GroupBounds(cands[i].rects)
		bj := model.GroupBounds(cands[j].rects)
		if bi.Y0 != bj.Y0 {
			return bi.Y0 < bj.Y0
		}
		return bi.X0 < bj.X0
	})
}
