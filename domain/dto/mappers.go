package dto

import (
	"time"

	"taskstream/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	return &TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Category:  string(task.Category),
		Completed: task.Completed,
		UserID:    task.UserID,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// TasksToSnapshot builds a full snapshot from an already-ordered collection.
func TasksToSnapshot(tasks []*models.Task, now time.Time) *TaskSnapshot {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *TaskToTaskResponse(task)
	}

	stats := models.ComputeTaskStats(tasks, now)
	return &TaskSnapshot{
		Tasks: responses,
		Stats: TaskStatsDTO{
			Total:     stats.Total,
			Completed: stats.Completed,
			Pending:   stats.Pending,
			Today:     stats.Today,
		},
	}
}

// FilterSnapshot narrows the task list to a single category while keeping
// the aggregate counters of the full collection, preserving relative order.
func FilterSnapshot(snap *TaskSnapshot, category models.Category) *TaskSnapshot {
	filtered := make([]TaskResponse, 0, len(snap.Tasks))
	for _, task := range snap.Tasks {
		if task.Category == string(category) {
			filtered = append(filtered, task)
		}
	}
	return &TaskSnapshot{Tasks: filtered, Stats: snap.Stats}
}

// EmptySnapshot is what a signed-out user observes.
func EmptySnapshot() *TaskSnapshot {
	return &TaskSnapshot{Tasks: []TaskResponse{}}
}
