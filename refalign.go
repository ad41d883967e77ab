// Package refalign provides a fluent API for locating validated
// bibliography references inside a PDF and producing highlight
// annotations for them.
//
// Basic usage:
//
//	refs, err := refalign.LoadReferences("refs.yaml")
//	if err != nil {
//	    // handle error
//	}
//	highlights, err := refalign.Open("paper.pdf").References(refs).Annotate()
//
// With options:
//
//	highlights, err := refalign.Open("paper.pdf").
//	    References(refs).
//	    YearThreshold(7).
//	    Annotate()
//
// For advanced use cases, the lower-level pdfio and annotate packages
// are also available.
package refalign

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/refalign/refalign/annotate"
	"github.com/refalign/refalign/model"
	"github.com/refalign/refalign/pdfio"
	"github.com/refalign/refalign/report"
)

// Job accumulates configuration for one annotation run. Construct it
// with Open, chain option methods, then call a terminal operation like
// Annotate or Overlay.
type Job struct {
	filename string
	refs     []model.ReferenceRecord
	cfg      annotate.Config
	log      zerolog.Logger
	err      error
}

// Open starts an annotation job for the PDF at filename.
func Open(filename string) *Job {
	return &Job{
		filename: filename,
		cfg:      annotate.DefaultConfig(),
		log:      zerolog.Nop(),
	}
}

// References sets the validated reference records to locate.
func (j *Job) References(refs []model.ReferenceRecord) *Job {
	j.refs = refs
	return j
}

// ReferencesFile loads reference records from a YAML or JSON file.
func (j *Job) ReferencesFile(path string) *Job {
	if j.err != nil {
		return j
	}
	refs, err := LoadReferences(path)
	if err != nil {
		j.err = err
		return j
	}
	j.refs = refs
	return j
}

// YearThreshold sets how many years back from the current year a
// publication may be before it is flagged outdated.
func (j *Job) YearThreshold(years int) *Job {
	j.cfg.YearThreshold = years
	return j
}

// CurrentYear pins the year used for outdated checks instead of the
// wall clock.
func (j *Job) CurrentYear(year int) *Job {
	j.cfg.CurrentYear = year
	return j
}

// Config replaces the whole annotation configuration.
func (j *Job) Config(cfg annotate.Config) *Job {
	j.cfg = cfg
	return j
}

// Logger installs a logger for progress and diagnostics.
func (j *Job) Logger(log zerolog.Logger) *Job {
	j.log = log
	return j
}

// Pages extracts the PDF's positioned word stream without annotating.
func (j *Job) Pages() ([]model.Page, error) {
	if j.err != nil {
		return nil, j.err
	}
	return pdfio.NewExtractor().ExtractPages(j.filename)
}

// Annotate runs the full pipeline and returns every highlight for the
// document.
func (j *Job) Annotate() ([]model.Highlight, error) {
	if j.err != nil {
		return nil, j.err
	}
	if len(j.refs) == 0 {
		return nil, errors.New("no references configured")
	}

	pages, err := j.Pages()
	if err != nil {
		return nil, err
	}

	engine := annotate.NewEngineWithConfig(j.cfg)
	engine.SetLogger(j.log)
	return engine.AnnotateDocument(pages, j.refs), nil
}

// Overlay runs Annotate and additionally writes a reviewable overlay
// PDF to outPath.
func (j *Job) Overlay(outPath string) ([]model.Highlight, error) {
	if j.err != nil {
		return nil, j.err
	}
	if len(j.refs) == 0 {
		return nil, errors.New("no references configured")
	}

	pages, err := j.Pages()
	if err != nil {
		return nil, err
	}

	engine := annotate.NewEngineWithConfig(j.cfg)
	engine.SetLogger(j.log)
	highlights := engine.AnnotateDocument(pages, j.refs)

	if err := report.NewOverlayWriter().Write(outPath, pages, highlights); err != nil {
		return nil, err
	}
	return highlights, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
