package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"files-manager/internal/domain/entities"
	domain "files-manager/internal/domain/repository"
)

// LocalBlobs stores blobs on the local filesystem, sharded two levels deep
// by handle prefix. Writes go to a temp file first and are renamed into
// place, so a handle never points at partial content.
type LocalBlobs struct {
	basePath string
}

// NewLocalBlobs creates a blob store rooted at basePath, creating the
// directory if needed.
func NewLocalBlobs(basePath string) (domain.Blobs, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalBlobs{basePath: basePath}, nil
}

// Write persists the reader's bytes under a new random handle.
func (s *LocalBlobs) Write(ctx context.Context, r io.Reader) (string, error) {
	handle := uuid.New().String()
	if err := s.WriteNamed(ctx, handle, r); err != nil {
		return "", err
	}
	return handle, nil
}

// WriteNamed persists the reader's bytes under the given handle,
// overwriting any existing blob with that handle.
func (s *LocalBlobs) WriteNamed(_ context.Context, handle string, r io.Reader) error {
	tempFile, err := os.CreateTemp(s.basePath, "upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := io.Copy(tempFile, r); err != nil {
		tempFile.Close()
		return fmt.Errorf("write blob: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}

	targetPath := s.blobPath(handle)
	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return fmt.Errorf("create shard directory: %w", err)
	}

	if err := os.Rename(tempFile.Name(), targetPath); err != nil {
		return fmt.Errorf("persist blob: %w", err)
	}

	return nil
}

// Read opens the blob for reading.
func (s *LocalBlobs) Read(_ context.Context, handle string) (io.ReadCloser, error) {
	f, err := os.Open(s.blobPath(handle))
	if os.IsNotExist(err) {
		return nil, entities.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

// Exists reports whether the handle resolves to a stored blob.
func (s *LocalBlobs) Exists(_ context.Context, handle string) (bool, error) {
	_, err := os.Stat(s.blobPath(handle))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// blobPath shards blobs by the first four handle characters. Derived
// rendition handles share their original's prefix and land in the same
// shard directory.
func (s *LocalBlobs) blobPath(handle string) string {
	if len(handle) < 4 {
		return filepath.Join(s.basePath, handle)
	}
	return filepath.Join(s.basePath, handle[:2], handle[2:4], handle)
}
