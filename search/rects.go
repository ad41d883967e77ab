package search

import (
	"sort"

	"github.com/refalign/refalign/model"
)

// sameLineTolerance is the maximum Y0 difference for two rectangles to
// count as sitting on the same visual line.
const sameLineTolerance = 3.0

// MergeCloseRects merges rectangles on the same visual line that sit
// less than maxGap points apart horizontally. Text layers sometimes
// split one visual run (abbreviated journal tokens, for example) into
// separate word boxes; merging keeps the eventual highlight contiguous.
// Degenerate rectangles are dropped.
func MergeCloseRects(rects []model.Rect, maxGap float64) []model.Rect {
	rects = validRects(rects)
	if len(rects) == 0 {
		return nil
	}

	sorted := make([]model.Rect, len(rects))
	copy(sorted, rects)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y0 != sorted[j].Y0 {
			return sorted[i].Y0 < sorted[j].Y0
		}
		return sorted[i].X0 < sorted[j].X0
	})

	merged := []model.Rect{sorted[0]}
	for _, r := range sorted[1:] {
		current := &merged[len(merged)-1]
		sameLine := abs(r.Y0-current.Y0) < sameLineTolerance
		closeEnough := r.X0-current.X1 < maxGap

		if sameLine && closeEnough {
			*current = current.Union(r)
		} else {
			merged = append(merged, r)
		}
	}
	return merged
}

// GroupByProximity partitions rectangles into groups where each group
// is one visual occurrence of the target text. Consecutive rectangles
// (in (Y0, X0) order) join the current group when they share a visual
// line, or when they start a new line within maxVertical points whose
// horizontal gap from the previous rectangle is under maxHorizontalGap.
// This models line-wrap continuation of a single logical phrase.
func GroupByProximity(rects []model.Rect, maxVertical, maxHorizontalGap float64) [][]model.Rect {
	rects = validRects(rects)
	if len(rects) == 0 {
		return nil
	}

	sorted := make([]model.Rect, len(rects))
	copy(sorted, rects)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y0 != sorted[j].Y0 {
			return sorted[i].Y0 < sorted[j].Y0
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var groups [][]model.Rect
	current := []model.Rect{sorted[0]}

	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1]
		r := sorted[i]

		vertical := abs(r.Y0 - prev.Y0)
		horizontal := r.X0 - prev.X1

		sameLine := vertical < sameLineTolerance
		nextLine := vertical >= sameLineTolerance && vertical <= maxVertical
		closeHorizontally := horizontal < maxHorizontalGap

		if sameLine || (nextLine && closeHorizontally) {
			current = append(current, r)
		} else {
			groups = append(groups, current)
			current = []model.Rect{r}
		}
	}
	groups = append(groups, current)

	return groups
}

// validRects filters out rectangles the geometry stages cannot work
// with. Dropping them here keeps one malformed box from sinking a
// whole occurrence.
func validRects(rects []model.Rect) []model.Rect {
	valid := rects[:0:0]
	for _, r := range rects {
		if r.IsValid() {
			valid = append(valid, r)
		}
	}
	return valid
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
