// Package storage persists attachment bytes outside the database.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the stored object does not exist.
var ErrNotFound = errors.New("stored file not found")

// Object is an opened stored file.
type Object struct {
	io.ReadCloser
	Size int64
}

// Store writes, reads and removes attachment files addressed by the
// location returned from Save.
type Store interface {
	// Save writes r under name and returns the location to persist and the
	// number of bytes written. Save never overwrites an existing file.
	Save(ctx context.Context, name string, r io.Reader, contentType string) (location string, written int64, err error)

	// Open returns the stored file, or ErrNotFound.
	Open(ctx context.Context, location string) (*Object, error)

	// Remove deletes the stored file. Removing a missing file is not an error.
	Remove(ctx context.Context, location string) error
}
