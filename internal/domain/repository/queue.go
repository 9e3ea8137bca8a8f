package repository

import (
	"context"
)

// TaskQueue defines the producer side of the background job queue.
// Producers never await job completion; durability, retry and dead-letter
// policy belong to the queue itself.
type TaskQueue interface {
	// EnqueueThumbnail schedules rendition generation for an uploaded
	// image.
	EnqueueThumbnail(ctx context.Context, fileID, userID string) error

	// EnqueueWelcome schedules the welcome job for a new user.
	EnqueueWelcome(ctx context.Context, userID string) error
}
