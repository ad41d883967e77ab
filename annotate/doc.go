// Package annotate implements the reference-to-document alignment
// engine: it walks a document's pages in order, locates each validated
// reference's text, resolves competing highlight placements, flags
// outdated publication years, and attaches a one-time summary note to
// the bibliography heading.
//
// Pages are processed strictly sequentially because the heading and
// summary flags thread from page to page. Within a page, candidate
// production is pure; overlap resolution needs the full page view and
// runs after all per-reference searches complete.
package annotate
