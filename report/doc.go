// Package report renders annotation results into a reviewable PDF
// overlay: one page per source page with translucent highlight boxes,
// followed by a summary page listing every annotation note.
package report
