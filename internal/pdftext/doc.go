// Package pdftext reads positioned text from PDF files and exposes it through
// the port.Document interface.
//
// Text fragments come from github.com/tsawler/tabula. Page coordinates are
// converted to a top-left origin so callers can clip regions the way they
// would on a rendered page. Validate uses pdfcpu to reject uploads that are
// not readable PDFs before any text is extracted.
package pdftext
