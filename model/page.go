package model

// Word is one token from a page's text layer, with its bounding box and
// the block/line the extractor assigned it to. Block and line ids are
// only meaningful within a single page.
type Word struct {
	// Rect is the word's bounding box on the page.
	Rect Rect

	// Text is the word's content as extracted, punctuation included.
	Text string

	// Block is the text block id assigned by the extractor.
	Block int

	// Line is the line id within the block.
	Line int
}

// Page carries everything the engine needs from one PDF page: its
// dimensions and the ordered word stream. A page with no words is
// treated as unreadable and skipped by the document loop.
type Page struct {
	// Number is the 1-based page number in the document.
	Number int

	// Width and Height are the page dimensions in points.
	Width  float64
	Height float64

	// Words is the word stream in extraction order.
	Words []Word
}

// IsEmpty returns true if the page carries no usable words.
func (p Page) IsEmpty() bool {
	return len(p.Words) == 0
}
