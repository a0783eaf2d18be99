package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by backends when a key does not exist.
var ErrNotFound = errors.New("object not found")

// Storage is the object store the upload pipeline writes to.
// Keys are slash-separated and relative to the backend root.
type Storage interface {
	// Put stores reader under key. A partially written object is removed on failure.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// List returns every key under prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// GetURL returns the web-resolvable location of key.
	GetURL(key string) string
}
