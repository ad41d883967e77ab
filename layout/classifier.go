package layout

import (
	"sort"

	"github.com/refalign/refalign/model"
)

// Kind labels the detected page layout.
type Kind int

const (
	SingleColumn Kind = iota
	MultiColumn
)

// String returns a string representation of the layout kind.
func (k Kind) String() string {
	if k == MultiColumn {
		return "multi_column"
	}
	return "single_column"
}

// ClassifierConfig holds configuration for layout classification.
type ClassifierConfig struct {
	// WidthThresholdRatio is the fraction of page width the median
	// block width must fall below for a page to be multi column.
	// Default: 0.65
	WidthThresholdRatio float64

	// MinBlockHeight filters out blocks shorter than this before the
	// width statistics run (noise, page numbers). Default: 8 points
	MinBlockHeight float64

	// MinBlockWidth filters out blocks narrower than this.
	// Default: 20 points
	MinBlockWidth float64
}

// DefaultClassifierConfig returns sensible default configuration.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		WidthThresholdRatio: 0.65,
		MinBlockHeight:      8.0,
		MinBlockWidth:       20.0,
	}
}

// Classifier labels pages single or multi column from block-width
// statistics. Classification is a pure function of its input.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a classifier with default configuration.
func NewClassifier() *Classifier {
	return &Classifier{config: DefaultClassifierConfig()}
}

// NewClassifierWithConfig creates a classifier with custom configuration.
func NewClassifierWithConfig(config ClassifierConfig) *Classifier {
	return &Classifier{config: config}
}

// Classify returns the layout kind for a page given its block bounding
// boxes. Pages with zero width or no surviving blocks default to
// single column. The boundary case where the median block width equals
// the threshold is single column.
func (c *Classifier) Classify(pageWidth float64, blocks []model.Rect) Kind {
	if pageWidth <= 0 || len(blocks) == 0 {
		return SingleColumn
	}

	var widths []float64
	for _, b := range blocks {
		if b.Height() > c.config.MinBlockHeight && b.Width() > c.config.MinBlockWidth {
			widths = append(widths, b.Width())
		}
	}
	if len(widths) == 0 {
		return SingleColumn
	}

	if median(widths) < pageWidth*c.config.WidthThresholdRatio {
		return MultiColumn
	}
	return SingleColumn
}

// median returns the median of values. The slice is sorted in place.
func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}
