package layout

import (
	"sort"
	"strings"

	"github.com/refalign/refalign/model"
)

// LineKey identifies a line within a page by the extractor's block and
// line ids.
type LineKey struct {
	Block int
	Line  int
}

// Line is a group of words sharing a (block, line) id, with aggregate
// geometry. Word indices refer back to the page's word stream.
type Line struct {
	// Key is the (block, line) identity of this line.
	Key LineKey

	// Y is the topmost Y coordinate of any word on the line.
	Y float64

	// XMin and XMax are the horizontal extent of the line.
	XMin, XMax float64

	// WordIndices are the positions of this line's words in the page
	// word stream, in stream order.
	WordIndices []int

	// Words are the word texts, parallel to WordIndices.
	Words []string

	// Rects are the word bounding boxes, parallel to WordIndices.
	Rects []model.Rect
}

// Text returns the line's words joined by single spaces.
func (l *Line) Text() string {
	return strings.Join(l.Words, " ")
}

// Bounds returns the bounding rectangle of the whole line.
func (l *Line) Bounds() model.Rect {
	return model.GroupBounds(l.Rects)
}

// WordCount returns the number of words on the line.
func (l *Line) WordCount() int {
	return len(l.Words)
}

// PageIndex is the per-page structural index: the word stream plus its
// grouping into lines. It is built fresh for each page, owned by that
// page's annotation pass, and discarded when the page completes.
type PageIndex struct {
	// Page is the indexed page.
	Page model.Page

	// Lines holds all detected lines sorted by vertical position.
	Lines []*Line

	byKey map[LineKey]*Line
	// lineOfWord maps a word stream index to its line.
	lineOfWord map[int]*Line
}

// NewPageIndex builds the line index for a page, skipping empty tokens.
// Runs in O(words).
func NewPageIndex(page model.Page) *PageIndex {
	idx := &PageIndex{
		Page:       page,
		byKey:      make(map[LineKey]*Line),
		lineOfWord: make(map[int]*Line),
	}

	for wi, w := range page.Words {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		key := LineKey{Block: w.Block, Line: w.Line}
		line, ok := idx.byKey[key]
		if !ok {
			line = &Line{
				Key:  key,
				Y:    w.Rect.Y0,
				XMin: w.Rect.X0,
				XMax: w.Rect.X1,
			}
			idx.byKey[key] = line
			idx.Lines = append(idx.Lines, line)
		}
		if w.Rect.Y0 < line.Y {
			line.Y = w.Rect.Y0
		}
		if w.Rect.X0 < line.XMin {
			line.XMin = w.Rect.X0
		}
		if w.Rect.X1 > line.XMax {
			line.XMax = w.Rect.X1
		}
		line.WordIndices = append(line.WordIndices, wi)
		line.Words = append(line.Words, w.Text)
		line.Rects = append(line.Rects, w.Rect)
		idx.lineOfWord[wi] = line
	}

	sort.SliceStable(idx.Lines, func(i, j int) bool {
		return idx.Lines[i].Y < idx.Lines[j].Y
	})

	return idx
}

// LineAt returns the line with the given (block, line) key, or nil.
func (idx *PageIndex) LineAt(key LineKey) *Line {
	return idx.byKey[key]
}

// LineOfWord returns the line containing the word at stream index wi,
// or nil if the word was empty or out of range.
func (idx *PageIndex) LineOfWord(wi int) *Line {
	return idx.lineOfWord[wi]
}

// Word returns the word at stream index wi.
func (idx *PageIndex) Word(wi int) model.Word {
	return idx.Page.Words[wi]
}

// WordCount returns the length of the underlying word stream.
func (idx *PageIndex) WordCount() int {
	return len(idx.Page.Words)
}

// Text reconstructs the page's text layer from the line index: words
// joined by single spaces, lines separated by newlines, in vertical
// order. This is the layer the candidate search runs against.
func (idx *PageIndex) Text() string {
	var sb strings.Builder
	for i, line := range idx.Lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line.Text())
	}
	return sb.String()
}

// Blocks aggregates word bounding boxes per block id. Used by the
// layout classifier's block-width statistics.
func (idx *PageIndex) Blocks() []model.Rect {
	byBlock := make(map[int]model.Rect)
	var order []int
	for _, w := range idx.Page.Words {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		if b, ok := byBlock[w.Block]; ok {
			byBlock[w.Block] = b.Union(w.Rect)
		} else {
			byBlock[w.Block] = w.Rect
			order = append(order, w.Block)
		}
	}
	sort.Ints(order)
	rects := make([]model.Rect, 0, len(order))
	for _, id := range order {
		rects = append(rects, byBlock[id])
	}
	return rects
}
