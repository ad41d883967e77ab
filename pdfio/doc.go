// Package pdfio extracts positioned words from PDF files. Character
// fragments from the content stream are grouped into words, rows, and
// column blocks, and all geometry is converted to a top-left origin so
// downstream consumers never see the PDF's bottom-up coordinates.
package pdfio
