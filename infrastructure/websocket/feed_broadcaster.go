package websocket

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"taskstream/domain/ports"
	"taskstream/domain/services"
	"taskstream/pkg/logger"
)

// FeedBroadcaster ties the change-event stream to the live feeds: every
// task change event, from this instance or any other, triggers a snapshot
// rebuild for the owning user. It also drives sign-out teardown and the
// midnight re-broadcast that rolls the "today" counter over.
type FeedBroadcaster struct {
	events    ports.TaskEventSubscriber
	feed      services.FeedService
	manager   *Manager
	running   bool
	runningMu sync.Mutex
	cancelCtx context.CancelFunc
}

func NewFeedBroadcaster(events ports.TaskEventSubscriber, feed services.FeedService, manager *Manager) *FeedBroadcaster {
	return &FeedBroadcaster{
		events:  events,
		feed:    feed,
		manager: manager,
	}
}

// Start begins consuming change events. With no event subscriber (NATS
// unavailable) the broadcaster still serves teardown and re-broadcast;
// events then arrive via HandleTaskChanged directly.
func (fb *FeedBroadcaster) Start() error {
	fb.runningMu.Lock()
	if fb.running {
		fb.runningMu.Unlock()
		return nil
	}
	fb.running = true
	fb.runningMu.Unlock()

	if fb.events == nil {
		logger.Warn("Feed broadcaster running without messaging, events dispatch in-process only")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	fb.cancelCtx = cancel

	if err := fb.events.Subscribe(ctx, fb.HandleTaskChanged); err != nil {
		fb.runningMu.Lock()
		fb.running = false
		fb.runningMu.Unlock()
		return err
	}

	logger.Info("Feed broadcaster started")
	return nil
}

// HandleTaskChanged rebuilds and delivers the owning user's snapshot.
func (fb *FeedBroadcaster) HandleTaskChanged(event *ports.TaskChangedEvent) {
	if event == nil || event.UserID == "" {
		logger.Warn("Invalid task change event received")
		return
	}

	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		logger.Warn("Task change event with bad user id", "user_id", event.UserID, "error", err)
		return
	}

	ctx := context.Background()
	if _, err := fb.feed.Broadcast(ctx, userID); err != nil {
		logger.Error("Failed to broadcast snapshot",
			"user_id", userID,
			"task_id", event.TaskID,
			"action", event.Action,
			"error", err,
		)
		return
	}

	logger.Debug("Snapshot broadcast",
		"user_id", userID,
		"task_id", event.TaskID,
		"action", event.Action,
	)
}

var _ ports.SessionTerminator = (*FeedBroadcaster)(nil)

// EndSession ends a signed-out user's feed. In-process subscriptions get an
// empty snapshot via Clear; the hub writes its own final empty snapshot
// before closing the connection, so the wire ordering holds regardless of
// how far behind the subscription pump is.
func (fb *FeedBroadcaster) EndSession(userID uuid.UUID) {
	fb.feed.Clear(userID)
	fb.manager.CloseUser(userID)
}

// RebroadcastAll rebuilds snapshots for every connected user. Scheduled at
// local midnight so the "today" counter resets without a mutation.
func (fb *FeedBroadcaster) RebroadcastAll() {
	ctx := context.Background()
	users := fb.manager.ConnectedUserIDs()

	for _, userID := range users {
		if _, err := fb.feed.Broadcast(ctx, userID); err != nil {
			logger.Warn("Midnight rebroadcast failed", "user_id", userID, "error", err)
		}
	}

	if len(users) > 0 {
		logger.Info("Snapshots rebroadcast", "users", len(users))
	}
}

// Stop cancels the event subscription.
func (fb *FeedBroadcaster) Stop() {
	fb.runningMu.Lock()
	defer fb.runningMu.Unlock()

	if !fb.running {
		return
	}
	fb.running = false

	if fb.cancelCtx != nil {
		fb.cancelCtx()
	}

	if fb.events != nil {
		if err := fb.events.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe from task events", "error", err)
		}
	}

	logger.Info("Feed broadcaster stopped")
}
