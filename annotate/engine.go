package annotate

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/refalign/refalign/layout"
	"github.com/refalign/refalign/model"
)

// Engine annotates a document's pages with reference highlights. Pages
// are processed strictly in order so one-per-document outcomes, like
// the bibliography summary, attach exactly once.
type Engine struct {
	cfg        Config
	log        zerolog.Logger
	classifier *layout.Classifier
}

// NewEngine creates an Engine with default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultConfig())
}

// NewEngineWithConfig creates an Engine with the given configuration.
func NewEngineWithConfig(cfg Config) *Engine {
	ccfg := layout.DefaultClassifierConfig()
	if cfg.WidthThresholdRatio > 0 {
		ccfg.WidthThresholdRatio = cfg.WidthThresholdRatio
	}
	return &Engine{
		cfg:        cfg,
		log:        zerolog.Nop(),
		classifier: layout.NewClassifierWithConfig(ccfg),
	}
}

// SetLogger installs a logger for progress and diagnostics. The default
// discards everything.
func (e *Engine) SetLogger(log zerolog.Logger) {
	e.log = log
}

// AnnotateDocument walks the pages in order and returns every highlight
// for the document: reference occurrences, outdated-year flags, and the
// one-time bibliography summary. Pages with no text are skipped.
// Nothing is annotated before a validated bibliography heading is
// located; a document without one yields no highlights at all. The
// returned slice is ordered by page, then by kind of outcome within the
// page.
func (e *Engine) AnnotateDocument(pages []model.Page, refs []model.ReferenceRecord) []model.Highlight {
	state := &DocState{}

	indexes := make([]*layout.PageIndex, len(pages))
	for i, page := range pages {
		if !page.IsEmpty() {
			indexes[i] = layout.NewPageIndex(page)
		}
	}
	headingPrior := e.sectionPrior(pages, indexes)

	var highlights []model.Highlight
	for i, page := range pages {
		hs := e.annotatePage(page, indexes[i], refs, state, headingPrior)
		highlights = append(highlights, hs...)
	}

	if !state.HeadingFound {
		e.log.Warn().Int("pages", len(pages)).Msg("no bibliography heading found in document")
	}
	return highlights
}

// sectionPrior runs the scored section locator over the document's full
// text and returns the 1-based page its winning heading candidate sits
// on, or 0 when no heading keyword occurs anywhere. Pages before the
// prior never validate a heading locally, so a stray "References" line
// early in the document (a table of contents, say) cannot start
// annotation when a better-scoring heading exists further down.
func (e *Engine) sectionPrior(pages []model.Page, indexes []*layout.PageIndex) int {
	var sb strings.Builder
	starts := make([]int, len(pages))
	for i, idx := range indexes {
		starts[i] = sb.Len()
		if idx != nil {
			sb.WriteString(idx.Text())
		}
		sb.WriteString("\n")
	}

	sec := LocateSection(sb.String())
	if sec == nil {
		return 0
	}
	for i := len(starts) - 1; i >= 0; i-- {
		if sec.CharIndex >= starts[i] {
			e.log.Debug().Int("page", pages[i].Number).Str("keyword", sec.Keyword).
				Int("score", sec.Score).Msg("section locator prior")
			return pages[i].Number
		}
	}
	return 0
}

// annotatePage runs the full per-page pipeline: classify layout, locate
// the heading if still missing, then collect candidates under the
// layout's strategy, resolve overlaps, emit, and flag outdated years.
// Until the heading has been found the page is left unannotated; the
// heading page itself is the first one annotated.
func (e *Engine) annotatePage(page model.Page, index *layout.PageIndex, refs []model.ReferenceRecord, state *DocState, headingPrior int) []model.Highlight {
	if index == nil {
		e.log.Debug().Int("page", page.Number).Msg("page has no text, skipping")
		return nil
	}

	kind := e.classifier.Classify(page.Width, index.Blocks())
	p := newPass(e.cfg, e.log, page, index, kind, strategyFor(kind))

	e.log.Debug().Int("page", page.Number).Str("layout", kind.String()).
		Int("words", p.index.WordCount()).Msg("annotating page")

	if !state.HeadingFound && page.Number >= headingPrior {
		e.locateHeading(p, refs, state)
	}
	if !state.HeadingFound {
		e.log.Debug().Int("page", page.Number).Msg("no bibliography heading yet, page left unannotated")
		return nil
	}

	p.collectCandidates(refs)
	accepted := p.resolve()
	p.emit(accepted)
	p.flagOutdatedYears()

	return p.highlights
}

// locateHeading looks for the bibliography heading on the current page
// and, on first success, attaches the document summary note to it. The
// DocState flags are monotonic so later pages can never re-attach.
func (e *Engine) locateHeading(p *pass, refs []model.ReferenceRecord, state *DocState) {
	rects, ok := locateHeadingInLines(p.index)
	if !ok {
		return
	}
	state.MarkHeading(rects)
	e.log.Info().Int("page", p.page.Number).Msg("bibliography heading located")

	if state.SummaryAttached {
		return
	}
	state.SummaryAttached = true
	p.highlights = append(p.highlights, model.Highlight{
		Page:  p.page.Number,
		Rects: state.headingRects,
		Color: model.ColorSummary,
		Title: "Reference summary",
		Note:  summaryNote(refs, time.Now()),
	})
}
