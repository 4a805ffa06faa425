package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                = errors.New("resource not found")
	ErrMissingFile             = errors.New("no file uploaded")
	ErrEmptyFileName           = errors.New("no selected file")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrDocumentOpen            = errors.New("document could not be opened")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrStorageDisabled         = errors.New("object storage is not configured")
)

// DocumentOpenError reports that an input could not be parsed as a PDF.
// It matches ErrDocumentOpen with errors.Is.
type DocumentOpenError struct {
	Path string
	Err  error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("opening %s: %v", e.Path, e.Err)
}

func (e *DocumentOpenError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDocumentOpen.
func (e *DocumentOpenError) Is(target error) bool {
	return target == ErrDocumentOpen
}

// NewDocumentOpenError wraps err as a DocumentOpenError for path.
func NewDocumentOpenError(path string, err error) *DocumentOpenError {
	return &DocumentOpenError{Path: path, Err: err}
}
