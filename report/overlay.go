package report

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/refalign/refalign/model"
)

// OverlayConfig holds configuration for overlay rendering.
type OverlayConfig struct {
	// Alpha is the fill opacity of highlight boxes. Default: 0.45
	Alpha float64

	// FontSize is the text size on the notes page. Default: 9 points
	FontSize float64

	// DrawLabels draws the reference number beside each highlight box.
	// Default: true
	DrawLabels bool
}

// DefaultOverlayConfig returns sensible default configuration.
func DefaultOverlayConfig() OverlayConfig {
	return OverlayConfig{
		Alpha:      0.45,
		FontSize:   9,
		DrawLabels: true,
	}
}

// OverlayWriter renders highlights onto blank pages matching the source
// document's page geometry.
type OverlayWriter struct {
	config OverlayConfig
}

// NewOverlayWriter creates a writer with default configuration.
func NewOverlayWriter() *OverlayWriter {
	return &OverlayWriter{config: DefaultOverlayConfig()}
}

// NewOverlayWriterWithConfig creates a writer with custom configuration.
func NewOverlayWriterWithConfig(config OverlayConfig) *OverlayWriter {
	return &OverlayWriter{config: config}
}

// Write renders the overlay PDF to path. Pages are emitted in order,
// each at its source size; pages without highlights are still emitted
// so page numbers line up with the source document. A final notes page
// lists every highlight's title and note.
func (w *OverlayWriter) Write(path string, pages []model.Page, highlights []model.Highlight) error {
	byPage := make(map[int][]model.Highlight)
	for _, h := range highlights {
		byPage[h.Page] = append(byPage[h.Page], h)
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt"})
	doc.SetFont("Helvetica", "", w.config.FontSize)

	for _, page := range pages {
		doc.AddPageFormat("P", gofpdf.SizeType{Wd: page.Width, Ht: page.Height})
		w.drawPage(doc, byPage[page.Number])
	}

	w.writeNotes(doc, highlights)

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing overlay %s: %w", path, err)
	}
	return nil
}

func (w *OverlayWriter) drawPage(doc *gofpdf.Fpdf, highlights []model.Highlight) {
	if len(highlights) == 0 {
		return
	}

	doc.SetAlpha(w.config.Alpha, "Normal")
	for _, h := range highlights {
		r, g, b := h.Color.RGB()
		doc.SetFillColor(int(r), int(g), int(b))
		for _, rect := range h.Rects {
			doc.Rect(rect.X0, rect.Y0, rect.Width(), rect.Height(), "F")
		}
	}
	doc.SetAlpha(1, "Normal")

	if !w.config.DrawLabels {
		return
	}
	doc.SetTextColor(60, 60, 60)
	for _, h := range highlights {
		if h.Ref == 0 || len(h.Rects) == 0 {
			continue
		}
		bounds := model.GroupBounds(h.Rects)
		doc.Text(bounds.X1+2, bounds.Y0+w.config.FontSize, fmt.Sprintf("[%d]", h.Ref))
	}
}

// writeNotes appends the notes page: every highlight's page number,
// title, and note body in document order.
func (w *OverlayWriter) writeNotes(doc *gofpdf.Fpdf, highlights []model.Highlight) {
	doc.AddPageFormat("P", gofpdf.SizeType{Wd: 612, Ht: 792})
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", w.config.FontSize+3)
	doc.SetXY(40, 40)
	doc.Cell(0, w.config.FontSize+3, "Annotation notes")
	doc.Ln(w.config.FontSize * 2.5)

	for _, h := range highlights {
		doc.SetX(40)
		doc.SetFont("Helvetica", "B", w.config.FontSize)
		doc.MultiCell(530, w.config.FontSize+2, fmt.Sprintf("p.%d  %s", h.Page, h.Title), "", "L", false)
		if note := strings.TrimSpace(h.Note); note != "" {
			doc.SetX(40)
			doc.SetFont("Helvetica", "", w.config.FontSize)
			doc.MultiCell(530, w.config.FontSize+2, note, "", "L", false)
		}
		doc.Ln(w.config.FontSize / 2)
	}
}
