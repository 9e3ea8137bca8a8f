package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/nfnt/resize"

	"files-manager/internal/domain/entities"
	"files-manager/internal/domain/repository"
)

// ThumbnailUseCase implements the background jobs consumed by the worker.
type ThumbnailUseCase struct {
	records repository.Records
	blobs   repository.Blobs
	logger  *slog.Logger
}

// NewThumbnailUseCase creates a new thumbnail use case.
func NewThumbnailUseCase(records repository.Records, blobs repository.Blobs, logger *slog.Logger) *ThumbnailUseCase {
	return &ThumbnailUseCase{
		records: records,
		blobs:   blobs,
		logger:  logger,
	}
}

// Generate renders the fixed-width renditions for an uploaded image and
// writes each next to the original as <handle>_<width>.
//
// A returned error fails the whole job and hands it back to the queue's
// retry policy. A failure on one width, however, is only logged; the other
// widths are still attempted and the job succeeds, matching the
// best-effort contract. The file record is never updated here; renditions
// are located by naming convention at read time.
func (t *ThumbnailUseCase) Generate(ctx context.Context, fileID, userID string) error {
	if fileID == "" {
		return errors.New("missing fileId")
	}
	if userID == "" {
		return errors.New("missing userId")
	}

	file, err := t.records.FindFileByID(ctx, fileID)
	if errors.Is(err, entities.ErrFileNotFound) {
		return fmt.Errorf("file %s not found", fileID)
	}
	if err != nil {
		return err
	}

	content, err := t.blobs.Read(ctx, file.LocalPath)
	if err != nil {
		return fmt.Errorf("read source blob: %w", err)
	}
	defer content.Close()

	img, _, err := image.Decode(content)
	if err != nil {
		return fmt.Errorf("decode image %s: %w", fileID, err)
	}

	for _, width := range entities.ThumbnailWidths {
		if err := t.writeRendition(ctx, file.LocalPath, img, width); err != nil {
			t.logger.ErrorContext(ctx, "failed to write rendition",
				"fileId", fileID, "width", width, "error", err)
		}
	}

	return nil
}

func (t *ThumbnailUseCase) writeRendition(ctx context.Context, handle string, img image.Image, width uint) error {
	scaled := resize.Resize(width, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return fmt.Errorf("encode rendition: %w", err)
	}

	rendition := fmt.Sprintf("%s_%d", handle, width)
	if err := t.blobs.WriteNamed(ctx, rendition, &buf); err != nil {
		return fmt.Errorf("store rendition: %w", err)
	}

	return nil
}

// Welcome logs a greeting for a newly registered user. An unknown user
// fails the job so the queue can retry a registration that has not landed
// yet.
func (t *ThumbnailUseCase) Welcome(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("missing userId")
	}

	user, err := t.records.FindUserByID(ctx, userID)
	if errors.Is(err, entities.ErrUserNotFound) {
		return fmt.Errorf("user %s not found", userID)
	}
	if err != nil {
		return err
	}

	t.logger.InfoContext(ctx, fmt.Sprintf("Welcome %s", user.Email), "userId", user.ID)
	return nil
}
