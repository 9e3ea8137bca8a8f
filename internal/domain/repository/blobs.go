package repository

import (
	"context"
	"io"
)

// Blobs defines the interface for raw content storage.
//
// A returned handle always refers to fully persisted bytes: implementations
// must not expose a handle for a partial write, and an error from Write
// means nothing was persisted.
type Blobs interface {
	// Write persists the reader's bytes under a freshly generated handle
	// and returns the handle.
	Write(ctx context.Context, r io.Reader) (string, error)

	// WriteNamed persists bytes under a caller-chosen handle, used for
	// derived renditions stored alongside an original.
	WriteNamed(ctx context.Context, handle string, r io.Reader) error

	// Read opens the blob for the handle. Fails with
	// entities.ErrBlobNotFound if the handle does not resolve.
	Read(ctx context.Context, handle string) (io.ReadCloser, error)

	// Exists checks whether a handle resolves to stored content.
	Exists(ctx context.Context, handle string) (bool, error)
}

// BlobBackend selects the blob storage implementation.
type BlobBackend string

const (
	BlobBackendLocal BlobBackend = "local"
	BlobBackendS3    BlobBackend = "s3"
)
