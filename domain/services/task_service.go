package services

import (
	"context"

	"github.com/google/uuid"

	"taskstream/domain/dto"
	"taskstream/domain/models"
)

// TaskService provides the mutation operations of the synchronization layer.
// Mutations return once the store acknowledges the write; the observed
// collection catches up through the feed, never through optimistic local
// edits.
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}
