// Package search locates reference text on a page. It provides the
// tiered candidate search (verbatim text first, then progressively
// shorter normalized prefixes), plus the rectangle merge and proximity
// grouping primitives that turn raw word hits into logical occurrences.
package search
