package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("object not found")

// Storage is where purchase receipts are written.
type Storage interface {
	// Put stores an object under key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get opens an object. Returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// GetURL returns the public URL for key.
	GetURL(key string) string
}
