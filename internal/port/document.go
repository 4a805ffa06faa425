package port

import (
	"context"
	"io"

	"examparse/internal/domain"
)

// Rect is an axis-aligned region of a page in points, origin at the top-left
// corner, X growing right and Y growing down.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Page is one renderable page of an opened document.
type Page interface {
	Width() float64
	Height() float64
	// TextInRect returns the plain text of the page restricted to r.
	TextInRect(r Rect) (string, error)
}

// Document is an opened, read-only paper. Callers must Close it.
type Document interface {
	PageCount() int
	Page(index int) (Page, error)
	Close() error
}

// DocumentOpener opens the document stored at path.
type DocumentOpener interface {
	Open(path string) (Document, error)
}

// DocumentValidator checks that an upload is a readable document and returns
// its page count.
type DocumentValidator interface {
	Validate(rs io.ReadSeeker) (int, error)
}

// DocumentProcessor extracts questions from the document stored at path.
type DocumentProcessor interface {
	Process(ctx context.Context, path string) (*domain.ExtractionResult, error)
}
