// Package blobstore abstracts where snapshot and report artifacts live:
// memory for tests, the local filesystem, or S3-compatible object storage.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations must return an error satisfying errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("blobstore: not found")

// Store reads and writes whole named blobs. Snapshots are written once and
// read back whole, so there is no random-access surface.
type Store interface {
	// Get returns the blob's full contents.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put writes the blob, replacing any previous contents.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
