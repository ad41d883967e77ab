package annotate

import "time"

// Config holds the engine's tuning knobs. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// YearThreshold is the age in years beyond which a publication
	// year is flagged outdated. Default: 5
	YearThreshold int

	// CurrentYear anchors the outdated-year cutoff. Zero means the
	// current wall-clock year.
	CurrentYear int

	// WidthThresholdRatio is passed to the layout classifier: pages
	// whose median block width falls below this fraction of the page
	// width are treated as multi column. Default: 0.65
	WidthThresholdRatio float64

	// OverlapThresholdPercent defines a blocking overlap between two
	// rectangle groups: intersection exceeding this percentage of the
	// smaller rectangle's area. Default: 30
	OverlapThresholdPercent float64

	// RectMergeGap is the maximum horizontal gap in points between
	// same-line rectangles that still merge into one. Default: 10
	RectMergeGap float64

	// RectGroupMaxVertical is the maximum line-to-line distance in
	// points for wrap continuation grouping. Default: 15
	RectGroupMaxVertical float64

	// RectGroupMaxHorizontalGap is the maximum horizontal gap in
	// points for wrap continuation grouping. Default: 50
	RectGroupMaxHorizontalGap float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		YearThreshold:             5,
		WidthThresholdRatio:       0.65,
		OverlapThresholdPercent:   30,
		RectMergeGap:              10,
		RectGroupMaxVertical:      15,
		RectGroupMaxHorizontalGap: 50,
	}
}

// currentYear resolves the configured anchor year.
func (c Config) currentYear() int {
	if c.CurrentYear > 0 {
		return c.CurrentYear
	}
	return time.Now().Year()
}

// minYear returns the oldest publication year that is not flagged.
func (c Config) minYear() int {
	return c.currentYear() - c.YearThreshold
}
