package services

import (
	"context"

	"github.com/google/uuid"

	"taskstream/domain/dto"
)

// FeedService owns the live, ordered view of each signed-in user's tasks.
// Consumers receive immutable snapshots; all changes flow through
// TaskService and come back via Broadcast.
type FeedService interface {
	// Snapshot rebuilds the user's full collection view from the store.
	Snapshot(ctx context.Context, userID uuid.UUID) (*dto.TaskSnapshot, error)
	// Subscribe returns a channel of snapshots for the user and a cancel
	// func. The channel delivers for as long as the subscription is active;
	// cancel must be called when the consuming view is discarded.
	Subscribe(userID uuid.UUID) (<-chan *dto.TaskSnapshot, func())
	// Broadcast rebuilds the user's snapshot and delivers it to every active
	// subscription for that user.
	Broadcast(ctx context.Context, userID uuid.UUID) (*dto.TaskSnapshot, error)
	// Clear delivers an empty snapshot to the user's subscriptions. Called on
	// sign-out so no stale data from the previous session stays visible.
	Clear(userID uuid.UUID)
}
