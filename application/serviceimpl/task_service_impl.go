package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskstream/domain/apperrors"
	"taskstream/domain/dto"
	"taskstream/domain/models"
	"taskstream/domain/ports"
	"taskstream/domain/repositories"
	"taskstream/domain/services"
	"taskstream/pkg/logger"
)

// TaskServiceImpl writes mutations through to the store and announces each
// acknowledged change. It never touches the observed collection directly:
// the view catches up when the feed rebuilds from the store.
type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
	events   ports.TaskEventPublisher
	notifier ports.StatusNotifier
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	events ports.TaskEventPublisher,
	notifier ports.StatusNotifier,
) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		events:   events,
		notifier: notifier,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be blank", apperrors.ErrInvalidMutation)
	}

	category := models.Category(req.Category)
	if category == "" {
		category = models.CategoryPersonal
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrInvalidMutation, req.Category)
	}

	task := &models.Task{
		ID:        uuid.New(),
		Title:     title,
		Category:  category,
		Completed: req.Completed,
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "user_id", userID, "error", err)
		s.notifyError(userID, "Failed to add task. Please try again.")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrWriteFailed, err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", userID)

	s.publishChange(ctx, userID, task.ID, ports.TaskActionCreated)
	s.notifySuccess(userID, fmt.Sprintf("Task %q added", task.Title))

	return task, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WarnContext(ctx, "Task not found for update", "task_id", taskID, "user_id", userID)
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrWriteFailed, err)
	}

	wasCompleted := task.Completed

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be blank", apperrors.ErrInvalidMutation)
		}
		task.Title = title
	}
	if req.Category != nil {
		category := models.Category(*req.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrInvalidMutation, *req.Category)
		}
		task.Category = category
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		s.notifyError(userID, "Failed to update task. Please try again.")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrWriteFailed, err)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "user_id", userID)

	s.publishChange(ctx, userID, taskID, ports.TaskActionUpdated)

	switch {
	case !wasCompleted && task.Completed:
		s.notifySuccess(userID, "Task completed! Great job!")
	case wasCompleted && !task.Completed:
		s.notifySuccess(userID, "Task marked as incomplete")
	default:
		s.notifySuccess(userID, "Task updated")
	}

	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WarnContext(ctx, "Task not found for deletion", "task_id", taskID, "user_id", userID)
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("%w: %v", apperrors.ErrWriteFailed, err)
	}

	if err := s.taskRepo.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		s.notifyError(userID, "Failed to delete task. Please try again.")
		return fmt.Errorf("%w: %v", apperrors.ErrWriteFailed, err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", userID)

	s.publishChange(ctx, userID, taskID, ports.TaskActionDeleted)
	s.notifySuccess(userID, fmt.Sprintf("Task %q deleted", task.Title))

	return nil
}

// publishChange announces an acknowledged mutation. A fanout failure is
// logged, not returned: the write already succeeded and the next snapshot
// rebuild will pick it up.
func (s *TaskServiceImpl) publishChange(ctx context.Context, userID, taskID uuid.UUID, action string) {
	if s.events == nil {
		return
	}

	event := &ports.TaskChangedEvent{
		UserID: userID.String(),
		TaskID: taskID.String(),
		Action: action,
	}
	if err := s.events.PublishTaskChanged(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish task change", "task_id", taskID, "error", err)
	}
}

func (s *TaskServiceImpl) notifySuccess(userID uuid.UUID, message string) {
	if s.notifier != nil {
		s.notifier.NotifySuccess(userID, message)
	}
}

func (s *TaskServiceImpl) notifyError(userID uuid.UUID, message string) {
	if s.notifier != nil {
		s.notifier.NotifyError(userID, message)
	}
}
