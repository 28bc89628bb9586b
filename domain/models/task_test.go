package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTask(category Category, completed bool, createdAt time.Time) *Task {
	return &Task{
		ID:        uuid.New(),
		Title:     "task",
		Category:  category,
		Completed: completed,
		UserID:    uuid.New(),
		CreatedAt: createdAt,
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), "category %s should be valid", c)
	}

	assert.False(t, Category("").Valid())
	assert.False(t, Category("Chores").Valid())
	assert.False(t, Category("personal").Valid())
}

func TestCreatedToday(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		createdAt time.Time
		expected  bool
	}{
		{"same day morning", time.Date(2026, 3, 15, 0, 0, 1, 0, time.Local), true},
		{"same day late", time.Date(2026, 3, 15, 23, 59, 59, 0, time.Local), true},
		{"yesterday", time.Date(2026, 3, 14, 23, 59, 59, 0, time.Local), false},
		{"tomorrow", time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local), false},
		{"a year ago", time.Date(2025, 3, 15, 14, 0, 0, 0, time.Local), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTask(CategoryPersonal, false, tt.createdAt)
			assert.Equal(t, tt.expected, task.CreatedToday(now))
		})
	}
}

func TestComputeTaskStats(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)

	tasks := []*Task{
		newTask(CategoryPersonal, true, now),
		newTask(CategoryWork, false, now),
		newTask(CategoryWork, false, yesterday),
		newTask(CategoryStudy, true, yesterday),
	}

	stats := ComputeTaskStats(tasks, now)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 2, stats.Today)
	assert.Equal(t, stats.Total, stats.Completed+stats.Pending)
}

func TestComputeTaskStatsEmpty(t *testing.T) {
	stats := ComputeTaskStats(nil, time.Now())

	assert.Equal(t, TaskStats{}, stats)
}

func TestFilterByCategory(t *testing.T) {
	now := time.Now()
	work1 := newTask(CategoryWork, false, now)
	personal := newTask(CategoryPersonal, false, now)
	work2 := newTask(CategoryWork, true, now)
	health := newTask(CategoryHealth, false, now)

	tasks := []*Task{work1, personal, work2, health}

	filtered := FilterByCategory(tasks, CategoryWork)

	assert.Len(t, filtered, 2)
	assert.Equal(t, work1.ID, filtered[0].ID)
	assert.Equal(t, work2.ID, filtered[1].ID)
}

func TestFilterByCategoryNoFilter(t *testing.T) {
	tasks := []*Task{
		newTask(CategoryWork, false, time.Now()),
		newTask(CategoryPersonal, false, time.Now()),
	}

	assert.Equal(t, tasks, FilterByCategory(tasks, ""))
}

func TestFilterByCategoryNoMatch(t *testing.T) {
	tasks := []*Task{newTask(CategoryWork, false, time.Now())}

	assert.Empty(t, FilterByCategory(tasks, CategoryOther))
}
