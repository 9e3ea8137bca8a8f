package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"files-manager/internal/domain/entities"
	"files-manager/internal/usecase"
)

// TaskHandler adapts queue tasks to the thumbnail use case. A returned
// error hands the task back to asynq's retry policy.
type TaskHandler struct {
	thumbnails *usecase.ThumbnailUseCase
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(thumbnails *usecase.ThumbnailUseCase) *TaskHandler {
	return &TaskHandler{thumbnails: thumbnails}
}

// RegisterHandlers wires the task types into the mux.
func (h *TaskHandler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(entities.TaskTypeThumbnail, h.HandleThumbnail)
	mux.HandleFunc(entities.TaskTypeWelcome, h.HandleWelcome)
}

// HandleThumbnail processes a thumbnail:generate task.
func (h *TaskHandler) HandleThumbnail(ctx context.Context, task *asynq.Task) error {
	var payload entities.ThumbnailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", task.Type(), err)
	}

	return h.thumbnails.Generate(ctx, payload.FileID, payload.UserID)
}

// HandleWelcome processes a user:welcome task.
func (h *TaskHandler) HandleWelcome(ctx context.Context, task *asynq.Task) error {
	var payload entities.WelcomePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", task.Type(), err)
	}

	return h.thumbnails.Welcome(ctx, payload.UserID)
}
