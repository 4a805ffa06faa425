package port

import (
	"context"
	"io"
	"time"
)

// PutInput describes one object written to the archive.
type PutInput struct {
	Key         string
	Body        io.Reader
	ContentType string
}

// ObjectStorage archives uploaded papers and their extraction results in a
// single bucket.
type ObjectStorage interface {
	// Put stores the object and returns its location.
	Put(ctx context.Context, input PutInput) (string, error)
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
