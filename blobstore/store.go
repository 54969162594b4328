package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for storing immutable snapshot blobs.
type BlobStore interface {
	// Open opens an existing blob for reading.
	Open(ctx context.Context, name string) (Blob, error)

	// Create creates a blob for streaming writes. The blob becomes visible
	// atomically when Close returns nil.
	Create(ctx context.Context, name string) (WritableBlob, error)

	// Delete removes a blob.
	Delete(ctx context.Context, name string) error
}

// Blob is a read-only handle to a stored blob.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// WritableBlob is a write-only handle to a blob under construction.
type WritableBlob interface {
	io.Writer
	io.Closer
}

// Reader returns an io.Reader over the blob's full contents.
func Reader(b Blob) io.Reader {
	return io.NewSectionReader(b, 0, b.Size())
}
