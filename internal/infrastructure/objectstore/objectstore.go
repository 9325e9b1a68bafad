package objectstore

import (
	"context"
	"io"
)

// ObjectStore is the object storage collaborator. It accepts bytes and returns
// an opaque locator string; document metadata records own nothing but that
// locator.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
	Delete(ctx context.Context, locator string) error
}
