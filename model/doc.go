// Package model defines the core data types shared across the reference
// alignment engine: rectangle geometry, page word streams, validated
// reference records, and emitted highlights.
//
// All geometry uses PDF points with the origin at the top-left of the page
// and Y increasing downward, matching the coordinate system of the word
// streams produced by PDF text extraction.
package model
