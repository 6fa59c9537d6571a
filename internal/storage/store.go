// Package storage holds the blob stores that keep uploaded catalog images.
// The store is the source of truth for whether an image exists; records only
// carry its key.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no blob exists under a key.
var ErrNotFound = errors.New("blob not found")

// ErrInvalidKey is returned for keys that are empty or escape the store root.
var ErrInvalidKey = errors.New("invalid blob key")

// Store persists blobs under slash-separated relative keys.
type Store interface {
	// Save writes r under key, replacing any existing blob.
	Save(ctx context.Context, key string, r io.Reader) error
	// Open returns the blob contents. Missing blobs yield ErrNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
