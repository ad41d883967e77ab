// Package layout builds per-page structural indexes from raw word
// streams and classifies page layout as single or multi column. The
// index groups words into lines keyed by (block, line) id; the
// classifier drives which annotation strategy a page is routed to.
package layout
