package serviceimpl

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskstream/domain/models"
	"taskstream/domain/ports"
)

// fakeTaskRepo is an in-memory TaskRepository with the same contract as the
// Postgres implementation: user-scoped lookups, created_at DESC id DESC
// ordering, record-not-found on missing deletes.
type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*models.Task

	createErr error
	updateErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*models.Task)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *fakeTaskRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Task
	for _, task := range r.tasks {
		if task.UserID == userID {
			clone := *task
			result = append(result, &clone)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return strings.Compare(result[i].ID.String(), result[j].ID.String()) > 0
	})

	return result, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.tasks[task.ID]
	if !ok || stored.UserID != task.UserID {
		return gorm.ErrRecordNotFound
	}
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// recordingNotifier captures status notifications in order.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) NotifySuccess(userID uuid.UUID, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) NotifyError(userID uuid.UUID, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

// recordingPublisher captures published change events in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*ports.TaskChangedEvent
}

func (p *recordingPublisher) PublishTaskChanged(ctx context.Context, event *ports.TaskChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// recordingSessions captures session teardown calls.
type recordingSessions struct {
	mu    sync.Mutex
	ended []uuid.UUID
}

func (s *recordingSessions) EndSession(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = append(s.ended, userID)
}
