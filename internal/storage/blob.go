// Package storage abstracts the object store holding profile picture blobs.
package storage

import (
	"context"
	"io"
)

type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Delete(ctx context.Context, key string) error

	// URL returns the externally visible location of a stored blob.
	URL(key string) string
}
