package ports

import "context"

// TaskChangedEvent is the fanout signal emitted after every acknowledged
// task mutation. It carries no task data: receivers rebuild the owner's
// snapshot from the store, which keeps every instance's view
// subscription-derived.
type TaskChangedEvent struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
	Action string `json:"action"` // created, updated, deleted
}

const (
	TaskActionCreated = "created"
	TaskActionUpdated = "updated"
	TaskActionDeleted = "deleted"
)

// TaskEventPublisher announces task changes to every API instance.
type TaskEventPublisher interface {
	PublishTaskChanged(ctx context.Context, event *TaskChangedEvent) error
}

// TaskEventPublisherFunc adapts a function to TaskEventPublisher. Used when
// messaging is unavailable and events dispatch in-process.
type TaskEventPublisherFunc func(ctx context.Context, event *TaskChangedEvent) error

func (f TaskEventPublisherFunc) PublishTaskChanged(ctx context.Context, event *TaskChangedEvent) error {
	return f(ctx, event)
}

// TaskEventSubscriber receives task change events published by any instance.
type TaskEventSubscriber interface {
	Subscribe(ctx context.Context, handler func(*TaskChangedEvent)) error
	Unsubscribe() error
}
