package websocket

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskstream/domain/dto"
	"taskstream/domain/ports"
)

type fakeFeed struct {
	mu        sync.Mutex
	broadcast []uuid.UUID
	cleared   []uuid.UUID
}

func (f *fakeFeed) Snapshot(ctx context.Context, userID uuid.UUID) (*dto.TaskSnapshot, error) {
	return dto.EmptySnapshot(), nil
}

func (f *fakeFeed) Subscribe(userID uuid.UUID) (<-chan *dto.TaskSnapshot, func()) {
	ch := make(chan *dto.TaskSnapshot)
	return ch, func() { close(ch) }
}

func (f *fakeFeed) Broadcast(ctx context.Context, userID uuid.UUID) (*dto.TaskSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcast = append(f.broadcast, userID)
	return dto.EmptySnapshot(), nil
}

func (f *fakeFeed) Clear(userID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = append(f.cleared, userID)
}

func TestHandleTaskChanged(t *testing.T) {
	feed := &fakeFeed{}
	fb := NewFeedBroadcaster(nil, feed, NewManager())
	userID := uuid.New()

	fb.HandleTaskChanged(&ports.TaskChangedEvent{
		UserID: userID.String(),
		TaskID: uuid.New().String(),
		Action: ports.TaskActionCreated,
	})

	require.Len(t, feed.broadcast, 1)
	assert.Equal(t, userID, feed.broadcast[0])
}

func TestHandleTaskChangedBadEvent(t *testing.T) {
	feed := &fakeFeed{}
	fb := NewFeedBroadcaster(nil, feed, NewManager())

	fb.HandleTaskChanged(nil)
	fb.HandleTaskChanged(&ports.TaskChangedEvent{UserID: ""})
	fb.HandleTaskChanged(&ports.TaskChangedEvent{UserID: "not-a-uuid"})

	assert.Empty(t, feed.broadcast)
}

func TestEndSessionClearsFeed(t *testing.T) {
	feed := &fakeFeed{}
	fb := NewFeedBroadcaster(nil, feed, NewManager())
	userID := uuid.New()

	fb.EndSession(userID)

	require.Len(t, feed.cleared, 1)
	assert.Equal(t, userID, feed.cleared[0])
}

func TestStartWithoutMessaging(t *testing.T) {
	fb := NewFeedBroadcaster(nil, &fakeFeed{}, NewManager())

	require.NoError(t, fb.Start())
	fb.Stop()
}
