package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskstream/domain/models"
)

// TaskRepository is the document-store boundary for tasks. Every read and
// write is scoped to the owning user; a task another user owns behaves
// exactly like one that does not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	// GetByID returns gorm.ErrRecordNotFound for unknown or foreign-owned ids.
	GetByID(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error)
	// ListByUserID returns the whole collection ordered created_at DESC, id DESC.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	// Delete returns gorm.ErrRecordNotFound when no owned row matched, so a
	// repeated delete of the same id fails rather than silently succeeding.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}
