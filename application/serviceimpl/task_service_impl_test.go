package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskstream/domain/apperrors"
	"taskstream/domain/dto"
	"taskstream/domain/models"
	"taskstream/domain/ports"
)

func newTaskServiceForTest() (*fakeTaskRepo, *recordingPublisher, *recordingNotifier, *TaskServiceImpl) {
	repo := newFakeTaskRepo()
	publisher := &recordingPublisher{}
	notifier := &recordingNotifier{}
	svc := NewTaskService(repo, publisher, notifier).(*TaskServiceImpl)
	return repo, publisher, notifier, svc
}

func TestCreateTaskDefaults(t *testing.T) {
	_, publisher, notifier, svc := newTaskServiceForTest()
	userID := uuid.New()
	before := time.Now()

	task, err := svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: "  Buy milk  "})
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, models.CategoryPersonal, task.Category)
	assert.False(t, task.Completed)
	assert.Equal(t, userID, task.UserID)
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.False(t, task.CreatedAt.Before(before))

	require.Len(t, publisher.events, 1)
	assert.Equal(t, ports.TaskActionCreated, publisher.events[0].Action)
	assert.Equal(t, userID.String(), publisher.events[0].UserID)

	require.Len(t, notifier.successes, 1)
	assert.Contains(t, notifier.successes[0], "Buy milk")
}

func TestCreateTaskBlankTitle(t *testing.T) {
	repo, publisher, _, svc := newTaskServiceForTest()

	for _, title := range []string{"", "   ", "\t\n"} {
		task, err := svc.CreateTask(context.Background(), uuid.New(), &dto.CreateTaskRequest{Title: title})
		assert.Nil(t, task)
		assert.ErrorIs(t, err, apperrors.ErrInvalidMutation)
	}

	assert.Empty(t, repo.tasks)
	assert.Empty(t, publisher.events)
}

func TestUpdateTaskBlankTitle(t *testing.T) {
	repo, _, _, svc := newTaskServiceForTest()
	userID := uuid.New()

	created, err := svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: "keep me"})
	require.NoError(t, err)

	for _, title := range []string{"", "  "} {
		title := title
		task, err := svc.UpdateTask(context.Background(), userID, created.ID, &dto.UpdateTaskRequest{Title: &title})
		assert.Nil(t, task)
		assert.ErrorIs(t, err, apperrors.ErrInvalidMutation)
	}

	stored, err := repo.GetByID(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", stored.Title)
}

func TestCreateTaskUnknownCategory(t *testing.T) {
	_, publisher, _, svc := newTaskServiceForTest()

	task, err := svc.CreateTask(context.Background(), uuid.New(), &dto.CreateTaskRequest{
		Title:    "x",
		Category: "Chores",
	})

	assert.Nil(t, task)
	assert.ErrorIs(t, err, apperrors.ErrInvalidMutation)
	assert.Empty(t, publisher.events)
}

func TestCreateTaskWriteFailure(t *testing.T) {
	repo, publisher, notifier, svc := newTaskServiceForTest()
	repo.createErr = errors.New("connection reset")

	task, err := svc.CreateTask(context.Background(), uuid.New(), &dto.CreateTaskRequest{Title: "x"})

	assert.Nil(t, task)
	assert.ErrorIs(t, err, apperrors.ErrWriteFailed)
	assert.Empty(t, publisher.events)
	require.Len(t, notifier.errors, 1)
}

func TestUpdateTaskPartialFields(t *testing.T) {
	repo, publisher, _, svc := newTaskServiceForTest()
	userID := uuid.New()

	created, err := svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{
		Title:    "Read book",
		Category: "Study",
	})
	require.NoError(t, err)

	completed := true
	updated, err := svc.UpdateTask(context.Background(), userID, created.ID, &dto.UpdateTaskRequest{
		Completed: &completed,
	})
	require.NoError(t, err)

	// Only the named field changes.
	assert.True(t, updated.Completed)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.UserID, updated.UserID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

	stored, err := repo.GetByID(context.Background(), userID, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, ports.TaskActionUpdated, publisher.events[1].Action)
}

func TestUpdateTaskCompletionMessages(t *testing.T) {
	_, _, notifier, svc := newTaskServiceForTest()
	userID := uuid.New()

	created, err := svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: "x"})
	require.NoError(t, err)

	complete := true
	_, err = svc.UpdateTask(context.Background(), userID, created.ID, &dto.UpdateTaskRequest{Completed: &complete})
	require.NoError(t, err)

	incomplete := false
	_, err = svc.UpdateTask(context.Background(), userID, created.ID, &dto.UpdateTaskRequest{Completed: &incomplete})
	require.NoError(t, err)

	title := "y"
	_, err = svc.UpdateTask(context.Background(), userID, created.ID, &dto.UpdateTaskRequest{Title: &title})
	require.NoError(t, err)

	require.Len(t, notifier.successes, 4)
	assert.Equal(t, "Task completed! Great job!", notifier.successes[1])
	assert.Equal(t, "Task marked as incomplete", notifier.successes[2])
	assert.Equal(t, "Task updated", notifier.successes[3])
}

func TestUpdateTaskNotFound(t *testing.T) {
	_, _, _, svc := newTaskServiceForTest()

	title := "x"
	task, err := svc.UpdateTask(context.Background(), uuid.New(), uuid.New(), &dto.UpdateTaskRequest{Title: &title})

	assert.Nil(t, task)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestUpdateTaskForeignOwner(t *testing.T) {
	_, _, _, svc := newTaskServiceForTest()
	owner := uuid.New()

	created, err := svc.CreateTask(context.Background(), owner, &dto.CreateTaskRequest{Title: "mine"})
	require.NoError(t, err)

	completed := true
	task, err := svc.UpdateTask(context.Background(), uuid.New(), created.ID, &dto.UpdateTaskRequest{Completed: &completed})

	assert.Nil(t, task)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	repo, publisher, notifier, svc := newTaskServiceForTest()
	userID := uuid.New()

	created, err := svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: "Trash"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(context.Background(), userID, created.ID))

	_, err = repo.GetByID(context.Background(), userID, created.ID)
	assert.Error(t, err)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, ports.TaskActionDeleted, publisher.events[1].Action)
	assert.Contains(t, notifier.successes[1], "Trash")

	// Deleting again is NotFound, not a silent success.
	err = svc.DeleteTask(context.Background(), userID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestTaskServiceNilCollaborators(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil, nil)
	userID := uuid.New()

	task, err := svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: "quiet"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTask(context.Background(), userID, task.ID))
}
