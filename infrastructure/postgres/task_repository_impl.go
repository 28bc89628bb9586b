package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskstream/domain/models"
	"taskstream/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	var tasks []*models.Task
	// id breaks ties so equal timestamps still order deterministically
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	// Select the mutable columns explicitly; created_at and user_id never
	// change after creation.
	return r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Select("title", "category", "completed", "updated_at").
		Updates(task).Error
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
