package annotate

import (
	"github.com/rs/zerolog"

	"github.com/refalign/refalign/layout"
	"github.com/refalign/refalign/model"
)

// word builds a test word with geometry derived from its text length.
func word(text string, x, y float64, block, line int) model.Word {
	width := float64(len(text)) * 6
	return model.Word{
		Rect:  model.Rect{X0: x, Y0: y, X1: x + width, Y1: y + 12},
		Text:  text,
		Block: block,
		Line:  line,
	}
}

// pageFromLines lays out one word line per entry in a single block,
// 15 points apart vertically, starting at startY.
func pageFromLines(number int, startY float64, lines [][]string) model.Page {
	page := model.Page{Number: number, Width: 612, Height: 792}
	for li, words := range lines {
		x := 50.0
		y := startY + float64(li)*15
		for _, w := range words {
			page.Words = append(page.Words, word(w, x, y, 0, li))
			x += float64(len(w))*6 + 5
		}
	}
	return page
}

func newTestPass(page model.Page, kind layout.Kind) *pass {
	cfg := DefaultConfig()
	cfg.CurrentYear = 2026
	index := layout.NewPageIndex(page)
	return newPass(cfg, zerolog.Nop(), page, index, kind, strategyFor(kind))
}
