package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"taskstream/domain/ports"
	"taskstream/pkg/logger"
)

// Publisher announces task changes on the per-user change subject.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

var _ ports.TaskEventPublisher = (*Publisher)(nil)

func (p *Publisher) PublishTaskChanged(ctx context.Context, event *ports.TaskChangedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal task event: %w", err)
	}

	if err := p.client.conn.Publish(taskChangedSubject(event.UserID), data); err != nil {
		logger.Error("Failed to publish task change",
			"user_id", event.UserID,
			"task_id", event.TaskID,
			"action", event.Action,
			"error", err,
		)
		return fmt.Errorf("failed to publish task change: %w", err)
	}

	logger.Debug("Task change published",
		"user_id", event.UserID,
		"task_id", event.TaskID,
		"action", event.Action,
	)

	return nil
}
