package serviceimpl

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskstream/domain/dto"
	"taskstream/domain/repositories"
	"taskstream/domain/services"
)

// FeedServiceImpl maintains the live per-user view. Snapshots are always
// rebuilt from the store; subscribers hold a buffered channel where a newer
// snapshot replaces an undelivered older one, so a slow consumer only ever
// skips intermediate states, never reorders them.
type FeedServiceImpl struct {
	taskRepo repositories.TaskRepository

	mu          sync.Mutex
	subscribers map[uuid.UUID]map[int]chan *dto.TaskSnapshot
	nextID      int
}

func NewFeedService(taskRepo repositories.TaskRepository) services.FeedService {
	return &FeedServiceImpl{
		taskRepo:    taskRepo,
		subscribers: make(map[uuid.UUID]map[int]chan *dto.TaskSnapshot),
	}
}

func (s *FeedServiceImpl) Snapshot(ctx context.Context, userID uuid.UUID) (*dto.TaskSnapshot, error) {
	tasks, err := s.taskRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.TasksToSnapshot(tasks, time.Now()), nil
}

func (s *FeedServiceImpl) Subscribe(userID uuid.UUID) (<-chan *dto.TaskSnapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subscribers[userID] == nil {
		s.subscribers[userID] = make(map[int]chan *dto.TaskSnapshot)
	}

	id := s.nextID
	s.nextID++

	ch := make(chan *dto.TaskSnapshot, 1)
	s.subscribers[userID][id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if subs, ok := s.subscribers[userID]; ok {
			if ch, ok := subs[id]; ok {
				delete(subs, id)
				close(ch)
			}
			if len(subs) == 0 {
				delete(s.subscribers, userID)
			}
		}
	}

	return ch, cancel
}

func (s *FeedServiceImpl) Broadcast(ctx context.Context, userID uuid.UUID) (*dto.TaskSnapshot, error) {
	snapshot, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.deliver(userID, snapshot)
	return snapshot, nil
}

func (s *FeedServiceImpl) Clear(userID uuid.UUID) {
	s.deliver(userID, dto.EmptySnapshot())
}

func (s *FeedServiceImpl) deliver(userID uuid.UUID, snapshot *dto.TaskSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subscribers[userID] {
		select {
		case ch <- snapshot:
		default:
			// Replace the undelivered snapshot; the newest one wins.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}
