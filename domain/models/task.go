package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is the fixed set a task can belong to. A task always has one;
// create defaults it to Personal when the client omits it.
type Category string

const (
	CategoryPersonal Category = "Personal"
	CategoryWork     Category = "Work"
	CategoryStudy    Category = "Study"
	CategoryHealth   Category = "Health"
	CategoryOther    Category = "Other"
)

// Categories in display order.
var Categories = []Category{
	CategoryPersonal,
	CategoryWork,
	CategoryStudy,
	CategoryHealth,
	CategoryOther,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryStudy, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

type Task struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title     string    `gorm:"not null"`
	Category  Category  `gorm:"not null;default:'Personal'"`
	Completed bool      `gorm:"not null;default:false"`
	UserID    uuid.UUID `gorm:"not null;index"`
	User      User      `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Task) TableName() string {
	return "tasks"
}

// CreatedToday reports whether the task was created on the same local
// calendar date as now.
func (t *Task) CreatedToday(now time.Time) bool {
	y1, m1, d1 := t.CreatedAt.Local().Date()
	y2, m2, d2 := now.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TaskStats are the dashboard counters, recomputed from scratch on every
// snapshot. Total == Completed + Pending always holds.
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Today     int `json:"today"`
}

// ComputeTaskStats derives the aggregate counters from a task collection.
func ComputeTaskStats(tasks []*Task, now time.Time) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if t.CreatedToday(now) {
			stats.Today++
		}
	}
	return stats
}

// FilterByCategory returns the subset of tasks in the given category,
// preserving relative order. An empty category means no filter.
func FilterByCategory(tasks []*Task, category Category) []*Task {
	if category == "" {
		return tasks
	}
	filtered := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
