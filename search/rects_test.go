package search

import (
	"testing"

	"github.com/refalign/refalign/model"
)

func TestMergeCloseRects_SameLine(t *testing.T) {
	rects := []model.Rect{
		{X0: 10, Y0: 100, X1: 50, Y1: 112},
		{X0: 55, Y0: 101, X1: 90, Y1: 113},
		{X0: 200, Y0: 100, X1: 240, Y1: 112},
	}

	merged := MergeCloseRects(rects, 10)
	if len(merged) != 2 {
		t.Fatalf("MergeCloseRects() returned %d rects, want 2", len(merged))
	}
	if merged[0].X0 != 10 || merged[0].X1 != 90 {
		t.Errorf("merged rect = %+v, want X0=10 X1=90", merged[0])
	}
}

func TestMergeCloseRects_DifferentLinesStaySeparate(t *testing.T) {
	rects := []model.Rect{
		{X0: 10, Y0: 100, X1: 50, Y1: 112},
		{X0: 10, Y0: 115, X1: 50, Y1: 127},
	}

	merged := MergeCloseRects(rects, 10)
	if len(merged) != 2 {
		t.Errorf("MergeCloseRects() returned %d rects, want 2", len(merged))
	}
}

func TestMergeCloseRects_DropsDegenerate(t *testing.T) {
	rects := []model.Rect{
		{X0: 10, Y0: 100, X1: 50, Y1: 112},
		{X0: 60, Y0: 100, X1: 60, Y1: 112},
	}

	merged := MergeCloseRects(rects, 10)
	if len(merged) != 1 {
		t.Errorf("MergeCloseRects() returned %d rects, want 1", len(merged))
	}
}

func TestGroupByProximity_WrapContinuation(t *testing.T) {
	// Two lines of one wrapped phrase, 14 points apart vertically with
	// the second line starting back at the left margin.
	rects := []model.Rect{
		{X0: 50, Y0: 100, X1: 300, Y1: 112},
		{X0: 50, Y0: 114, X1: 250, Y1: 126},
	}

	groups := GroupByProximity(rects, 15, 50)
	if len(groups) != 1 {
		t.Fatalf("GroupByProximity() returned %d groups, want 1", len(groups))
	}
	if len(groups[0]) != 2 {
		t.Errorf("group has %d rects, want 2", len(groups[0]))
	}
}

func TestGroupByProximity_DistantLinesSplit(t *testing.T) {
	rects := []model.Rect{
		{X0: 50, Y0: 100, X1: 300, Y1: 112},
		{X0: 50, Y0: 160, X1: 250, Y1: 172},
	}

	groups := GroupByProximity(rects, 15, 50)
	if len(groups) != 2 {
		t.Errorf("GroupByProximity() returned %d groups, want 2", len(groups))
	}
}

func TestGroupByProximity_TightVerticalLimitSplits(t *testing.T) {
	rects := []model.Rect{
		{X0: 50, Y0: 100, X1: 300, Y1: 112},
		{X0: 50, Y0: 114, X1: 250, Y1: 126},
	}

	groups := GroupByProximity(rects, 5, 50)
	if len(groups) != 2 {
		t.Errorf("GroupByProximity() with maxVertical=5 returned %d groups, want 2", len(groups))
	}
}
