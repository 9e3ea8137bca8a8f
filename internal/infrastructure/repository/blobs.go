package repository

import (
	"fmt"

	"files-manager/internal/config"
	domain "files-manager/internal/domain/repository"
)

// NewBlobs builds the blob store selected by the storage configuration.
func NewBlobs(cfg config.StorageConfig) (domain.Blobs, error) {
	switch domain.BlobBackend(cfg.Backend) {
	case domain.BlobBackendLocal, "":
		return NewLocalBlobs(cfg.Path)
	case domain.BlobBackendS3:
		return NewS3Blobs(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
