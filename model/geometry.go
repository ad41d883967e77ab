package model

import "math"

// Rect represents an axis-aligned rectangle defined by its edges.
// X0,Y0 is the top-left corner and X1,Y1 the bottom-right corner
// (Y increases downward).
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// NewRect creates a rectangle from two corner coordinates, normalizing
// the edge order so that X0 <= X1 and Y0 <= Y1.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return math.Abs(r.Width() * r.Height())
}

// IsEmpty returns true if the rectangle has no positive extent.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// IsValid returns true if the rectangle has positive width and height
// and finite coordinates. Degenerate rectangles are dropped by the
// merge/group/resolve stages rather than propagated.
func (r Rect) IsValid() bool {
	for _, v := range [4]float64{r.X0, r.Y0, r.X1, r.Y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Width() > 0 && r.Height() > 0
}

// Intersects checks whether two rectangles share any area.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X1 < other.X0 ||
		r.X0 > other.X1 ||
		r.Y1 < other.Y0 ||
		r.Y0 > other.Y1)
}

// Intersection returns the overlapping region of two rectangles, or the
// zero Rect if they do not intersect.
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	return Rect{
		X0: math.Max(r.X0, other.X0),
		Y0: math.Max(r.Y0, other.Y0),
		X1: math.Min(r.X1, other.X1),
		Y1: math.Min(r.Y1, other.Y1),
	}
}

// Union returns the smallest rectangle covering both rectangles.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// OverlapRatio calculates how much of the smaller rectangle is covered
// by the intersection with the other rectangle. Returns 0..1.
func (r Rect) OverlapRatio(other Rect) float64 {
	if !r.Intersects(other) {
		return 0
	}
	minArea := math.Min(r.Area(), other.Area())
	if minArea == 0 {
		return 0
	}
	return r.Intersection(other).Area() / minArea
}

// GroupArea returns the summed area of a rectangle group. A group is the
// set of rectangles making up one visual occurrence of a text match,
// possibly spanning multiple lines.
func GroupArea(rects []Rect) float64 {
	total := 0.0
	for _, r := range rects {
		total += r.Area()
	}
	return total
}

// GroupBounds returns the bounding rectangle of a group, or the zero
// Rect for an empty group.
func GroupBounds(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	b := rects[0]
	for _, r := range rects[1:] {
		b = b.Union(r)
	}
	return b
}

// GroupsOverlap reports whether any rectangle in one group overlaps a
// rectangle in the other group by more than threshold percent of the
// smaller rectangle's area. This is the "blocking overlap" test used
// when resolving competing highlight placements.
func GroupsOverlap(a, b []Rect, thresholdPercent float64) bool {
	for _, ra := range a {
		for _, rb := range b {
			if ra.OverlapRatio(rb)*100 > thresholdPercent {
				return true
			}
		}
	}
	return false
}
