package pdfio

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/refalign/refalign/model"
)

// ExtractorConfig holds configuration for word extraction.
type ExtractorConfig struct {
	// WordGapMultiplier scales the font size to get the horizontal gap
	// that separates two words. Default: 0.3
	WordGapMultiplier float64

	// RowTolerance is the vertical distance within which character
	// fragments are grouped onto the same row. Default: 3 points
	RowTolerance float64

	// ColumnGapThreshold is the minimum horizontal gap treated as a
	// potential column separator. Default: 30 points
	ColumnGapThreshold float64

	// MinColumnRowsPct is the percentage of rows that must share a gap
	// before it counts as a column boundary. Default: 25
	MinColumnRowsPct int
}

// DefaultExtractorConfig returns sensible default configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		WordGapMultiplier:  0.3,
		RowTolerance:       3.0,
		ColumnGapThreshold: 30.0,
		MinColumnRowsPct:   25,
	}
}

// Extractor turns PDF pages into positioned word streams.
type Extractor struct {
	config ExtractorConfig
}

// NewExtractor creates an extractor with default configuration.
func NewExtractor() *Extractor {
	return &Extractor{config: DefaultExtractorConfig()}
}

// NewExtractorWithConfig creates an extractor with custom configuration.
func NewExtractorWithConfig(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPages opens the PDF at path and extracts every page.
func (e *Extractor) ExtractPages(path string) ([]model.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()
	return e.extract(r)
}

// ExtractReader extracts every page from an already open PDF.
func (e *Extractor) ExtractReader(r io.ReaderAt, size int64) ([]model.Page, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}
	return e.extract(reader)
}

func (e *Extractor) extract(r *pdf.Reader) ([]model.Page, error) {
	total := r.NumPage()
	pages := make([]model.Page, 0, total)
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		width, height := mediaBox(page)
		out := model.Page{Number: i, Width: width, Height: height}
		if !page.V.IsNull() {
			out.Words = e.pageWords(page, height)
		}
		pages = append(pages, out)
	}
	return pages, nil
}

// pageWords builds the page's word stream: characters are bucketed into
// rows, merged into words by horizontal gap, split into column blocks,
// and flipped to a top-left origin.
func (e *Extractor) pageWords(page pdf.Page, pageHeight float64) []model.Word {
	content := page.Content()
	texts := make([]pdf.Text, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return nil
	}

	rows := e.groupRows(texts)
	boundaries := e.columnBoundaries(rows)

	var words []model.Word
	for lineNum, row := range rows {
		for _, w := range e.mergeRow(row) {
			words = append(words, model.Word{
				Rect: model.Rect{
					X0: w.x0,
					Y0: pageHeight - w.y1,
					X1: w.x1,
					Y1: pageHeight - w.y0,
				},
				Text:  w.text,
				Block: blockOf(w, boundaries),
				Line:  lineNum,
			})
		}
	}
	return words
}

// rawWord is a merged word still in bottom-origin coordinates.
type rawWord struct {
	x0, y0, x1, y1 float64
	text           string
	fontSize       float64
}

// groupRows buckets character fragments by Y and orders the buckets top
// of page first.
func (e *Extractor) groupRows(texts []pdf.Text) [][]pdf.Text {
	type bucket struct {
		y     float64
		texts []pdf.Text
	}
	var buckets []bucket

	for _, t := range texts {
		placed := false
		for i := range buckets {
			if abs(t.Y-buckets[i].y) <= e.config.RowTolerance {
				buckets[i].texts = append(buckets[i].texts, t)
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{y: t.Y, texts: []pdf.Text{t}})
		}
	}

	// PDF Y grows upward, so higher Y is closer to the page top.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].y > buckets[j].y
	})

	rows := make([][]pdf.Text, len(buckets))
	for i, b := range buckets {
		sort.SliceStable(b.texts, func(x, y int) bool {
			return b.texts[x].X < b.texts[y].X
		})
		rows[i] = b.texts
	}
	return rows
}

// mergeRow joins adjacent character fragments into words, breaking on
// gaps wider than the font-scaled threshold.
func (e *Extractor) mergeRow(row []pdf.Text) []rawWord {
	var words []rawWord
	var cur *rawWord

	for _, t := range row {
		h := t.FontSize
		if h <= 0 {
			h = 10
		}
		if cur != nil {
			threshold := e.config.WordGapMultiplier * cur.fontSize
			if threshold <= 0 {
				threshold = 3.0
			}
			if t.X-cur.x1 <= threshold {
				cur.text += t.S
				if t.X+t.W > cur.x1 {
					cur.x1 = t.X + t.W
				}
				if t.Y < cur.y0 {
					cur.y0 = t.Y
				}
				if t.Y+h > cur.y1 {
					cur.y1 = t.Y + h
				}
				continue
			}
			words = append(words, *cur)
		}
		cur = &rawWord{
			x0:       t.X,
			y0:       t.Y,
			x1:       t.X + t.W,
			y1:       t.Y + h,
			text:     t.S,
			fontSize: h,
		}
	}
	if cur != nil {
		words = append(words, *cur)
	}
	return words
}

// columnBoundaries finds X positions where a wide gap recurs across
// enough rows to indicate a column separator. Gap centers are bucketed
// to 20 points so ragged column edges still vote together.
func (e *Extractor) columnBoundaries(rows [][]pdf.Text) []float64 {
	const bucketSize = 20.0

	counts := make(map[int]int)
	for _, row := range rows {
		for i := 0; i < len(row)-1; i++ {
			gapLeft := row[i].X + row[i].W
			gapRight := row[i+1].X
			if gapRight-gapLeft < e.config.ColumnGapThreshold {
				continue
			}
			center := (gapLeft + gapRight) / 2
			counts[int(center/bucketSize)]++
		}
	}

	pct := e.config.MinColumnRowsPct
	if pct <= 0 {
		pct = 25
	}
	minRows := len(rows) * pct / 100
	if minRows < 3 {
		minRows = 3
	}

	var boundaries []float64
	for b, count := range counts {
		if count >= minRows {
			boundaries = append(boundaries, float64(b)*bucketSize+bucketSize/2)
		}
	}
	sort.Float64s(boundaries)

	merged := boundaries[:0]
	for _, b := range boundaries {
		if len(merged) == 0 || b-merged[len(merged)-1] > bucketSize*2 {
			merged = append(merged, b)
		}
	}
	return merged
}

// blockOf returns the column index for a word: the number of boundaries
// to the left of its horizontal center.
func blockOf(w rawWord, boundaries []float64) int {
	center := (w.x0 + w.x1) / 2
	block := 0
	for _, b := range boundaries {
		if center > b {
			block++
		}
	}
	return block
}

// mediaBox returns the page width and height from the MediaBox entry,
// falling back to US Letter when it is missing or degenerate.
func mediaBox(page pdf.Page) (width, height float64) {
	box := page.V.Key("MediaBox")
	if box.IsNull() {
		box = page.V.Key("Parent").Key("MediaBox")
	}
	if box.Len() == 4 {
		x0 := box.Index(0).Float64()
		y0 := box.Index(1).Float64()
		x1 := box.Index(2).Float64()
		y1 := box.Index(3).Float64()
		width = x1 - x0
		height = y1 - y0
	}
	if width <= 0 || height <= 0 {
		width, height = 612, 792
	}
	return width, height
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
