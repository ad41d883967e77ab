package model

// Color identifies the highlight color class. The concrete RGB values
// follow the validation service's fixed palette.
type Color string

const (
	// ColorSummary marks the bibliography heading carrying the one-time
	// document summary note.
	ColorSummary Color = "summary"

	// ColorIndexed marks references whose journal is indexed.
	ColorIndexed Color = "indexed"

	// ColorUnindexed marks journal references that are not indexed.
	ColorUnindexed Color = "unindexed"

	// ColorOutdated marks publication years older than the threshold.
	ColorOutdated Color = "outdated"

	// ColorOther marks non-journal references that are not indexed.
	ColorOther Color = "other"
)

// RGB returns the 8-bit color components for the highlight fill.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case ColorSummary:
		return 210, 236, 238
	case ColorIndexed:
		return 208, 233, 222
	case ColorUnindexed:
		return 251, 215, 222
	case ColorOutdated:
		return 255, 105, 97
	case ColorOther:
		return 255, 179, 71
	default:
		return 255, 255, 0
	}
}

// Highlight is one emitted annotation: a group of rectangles on a page,
// a color, and the attached note. Highlights are written once and never
// mutated after emission.
type Highlight struct {
	// Page is the 1-based page number the highlight belongs to.
	Page int `json:"page" yaml:"page"`

	// Rects is the rectangle group covering the highlighted text.
	Rects []Rect `json:"rects" yaml:"rects"`

	// Color selects the fill color class.
	Color Color `json:"color" yaml:"color"`

	// Title is the short annotation title.
	Title string `json:"title" yaml:"title"`

	// Note is the structured note body attached to the highlight.
	Note string `json:"note" yaml:"note"`

	// Ref is the owning reference number, or 0 for the section summary
	// and year highlights.
	Ref int `json:"ref,omitempty" yaml:"ref,omitempty"`
}
