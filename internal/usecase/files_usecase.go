package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"files-manager/internal/domain/entities"
	"files-manager/internal/domain/repository"
)

// FilesUseCase orchestrates upload validation, blob writes, record writes
// and visibility toggles.
type FilesUseCase struct {
	records repository.Records
	blobs   repository.Blobs
	queue   repository.TaskQueue
	logger  *slog.Logger
}

// NewFilesUseCase creates a new files use case.
func NewFilesUseCase(records repository.Records, blobs repository.Blobs, queue repository.TaskQueue, logger *slog.Logger) *FilesUseCase {
	return &FilesUseCase{
		records: records,
		blobs:   blobs,
		queue:   queue,
		logger:  logger,
	}
}

// UploadInput carries the client-supplied upload fields. Data is base64
// encoded and must be present for anything but a folder.
type UploadInput struct {
	Name     string
	Type     entities.FileType
	ParentID string
	IsPublic bool
	Data     string
}

// Upload validates the input, persists content to the blob store, inserts
// the file record and, for images, schedules thumbnail generation.
//
// The blob is written before the record: a blob failure means no record is
// created, while a crash between the two steps can only leave a harmless
// orphan blob. Thumbnailing is best-effort; an enqueue failure is logged
// and the upload still succeeds.
func (f *FilesUseCase) Upload(ctx context.Context, userID string, in UploadInput) (*entities.File, error) {
	if in.Name == "" {
		return nil, entities.NewValidationError("Missing name")
	}
	if !entities.ValidType(in.Type) {
		return nil, entities.NewValidationError("Missing type")
	}
	if in.Data == "" && in.Type != entities.FileTypeFolder {
		return nil, entities.NewValidationError("Missing data")
	}

	parentID := in.ParentID
	if parentID == "" {
		parentID = entities.RootParentID
	}
	if parentID != entities.RootParentID {
		parent, err := f.records.FindFileByID(ctx, parentID)
		if errors.Is(err, entities.ErrFileNotFound) {
			return nil, entities.NewValidationError("Parent not found")
		}
		if err != nil {
			return nil, err
		}
		if parent.Type != entities.FileTypeFolder {
			return nil, entities.NewValidationError("Parent is not a folder")
		}
	}

	var handle string
	if in.Type != entities.FileTypeFolder {
		content, err := base64.StdEncoding.DecodeString(in.Data)
		if err != nil {
			return nil, entities.NewValidationError("Invalid data")
		}

		handle, err = f.blobs.Write(ctx, bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("store content: %w", err)
		}
	}

	file := &entities.File{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		Type:      in.Type,
		IsPublic:  in.IsPublic,
		ParentID:  parentID,
		LocalPath: handle,
		CreatedAt: time.Now().UTC(),
	}

	if err := f.records.InsertFile(ctx, file); err != nil {
		return nil, err
	}

	if file.Type == entities.FileTypeImage {
		if err := f.queue.EnqueueThumbnail(ctx, file.ID, file.UserID); err != nil {
			f.logger.WarnContext(ctx, "failed to enqueue thumbnail task", "fileId", file.ID, "error", err)
		}
	}

	return file, nil
}

// SetVisibility toggles the public flag on a file owned by userID. The
// lookup is strict on (fileID, owner); anything else is not found.
func (f *FilesUseCase) SetVisibility(ctx context.Context, userID, fileID string, isPublic bool) (*entities.File, error) {
	return f.records.UpdateFileVisibility(ctx, fileID, userID, isPublic)
}

// GetMetadata returns the file record if the caller owns it or it is
// public. Everything else is entities.ErrFileNotFound, so existence is
// never disclosed.
func (f *FilesUseCase) GetMetadata(ctx context.Context, userID, fileID string) (*entities.File, error) {
	file, err := f.records.FindFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.UserID != userID && !file.IsPublic {
		return nil, entities.ErrFileNotFound
	}
	return file, nil
}

// List returns one page of the caller's files under parentID.
func (f *FilesUseCase) List(ctx context.Context, userID, parentID string, page int) ([]*entities.File, error) {
	if parentID == "" {
		parentID = entities.RootParentID
	}
	return f.records.FindFilesByParent(ctx, userID, parentID, page)
}

// Download returns the file content and its MIME type. Content is served
// if the file is public or userID is the owner; otherwise the file is
// reported as not found. width selects a thumbnail rendition (0 = the
// original).
func (f *FilesUseCase) Download(ctx context.Context, userID, fileID string, width uint) (io.ReadCloser, string, error) {
	file, err := f.records.FindFileByID(ctx, fileID)
	if err != nil {
		return nil, "", err
	}
	if !file.IsPublic && (userID == "" || file.UserID != userID) {
		return nil, "", entities.ErrFileNotFound
	}
	if file.Type == entities.FileTypeFolder {
		return nil, "", entities.ErrFolderHasNoData
	}

	handle := file.LocalPath
	if width > 0 {
		handle = fmt.Sprintf("%s_%d", handle, width)
	}

	content, err := f.blobs.Read(ctx, handle)
	if err != nil {
		// A record pointing at a missing blob is storage drift; the
		// client just sees not found.
		return nil, "", err
	}

	return content, contentTypeFor(file.Name), nil
}

func contentTypeFor(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
