package annotate

import "github.com/refalign/refalign/model"

// DocState threads the small amount of order-dependent state across the
// sequential page loop. Both flags move from false to true exactly once
// per document and never reset.
type DocState struct {
	// HeadingFound becomes true when a validated bibliography heading
	// has been located; later pages stop looking for one.
	HeadingFound bool

	// SummaryAttached becomes true when the one-time summary highlight
	// has been emitted, guaranteeing it fires once per document even
	// though the locator re-runs on every page until it succeeds.
	SummaryAttached bool

	// headingRects holds the validated heading's rectangles between
	// location and summary emission. Consumed once.
	headingRects []model.Rect
}

// MarkHeading records the located heading. Only the first call has any
// effect.
func (s *DocState) MarkHeading(rects []model.Rect) {
	if s.HeadingFound {
		return
	}
	s.HeadingFound = true
	s.headingRects = rects
}
