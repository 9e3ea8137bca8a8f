package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"files-manager/internal/domain/entities"
	domain "files-manager/internal/domain/repository"
)

// AsynqQueue produces background tasks on the Redis-backed asynq queue.
// Retry, backoff and archival of failed tasks are asynq's concern; the
// producer only enqueues and returns.
type AsynqQueue struct {
	client *asynq.Client
}

// NewAsynqQueue wraps an asynq client owned by the caller.
func NewAsynqQueue(client *asynq.Client) domain.TaskQueue {
	return &AsynqQueue{client: client}
}

// EnqueueThumbnail schedules rendition generation for an image upload.
func (q *AsynqQueue) EnqueueThumbnail(ctx context.Context, fileID, userID string) error {
	payload, err := json.Marshal(entities.ThumbnailPayload{FileID: fileID, UserID: userID})
	if err != nil {
		return fmt.Errorf("marshal thumbnail payload: %w", err)
	}

	task := asynq.NewTask(entities.TaskTypeThumbnail, payload)
	if _, err := q.client.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("enqueue %s: %w", entities.TaskTypeThumbnail, err)
	}
	return nil
}

// EnqueueWelcome schedules the welcome job for a new user.
func (q *AsynqQueue) EnqueueWelcome(ctx context.Context, userID string) error {
	payload, err := json.Marshal(entities.WelcomePayload{UserID: userID})
	if err != nil {
		return fmt.Errorf("marshal welcome payload: %w", err)
	}

	task := asynq.NewTask(entities.TaskTypeWelcome, payload)
	if _, err := q.client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("enqueue %s: %w", entities.TaskTypeWelcome, err)
	}
	return nil
}
