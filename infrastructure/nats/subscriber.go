package nats

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"

	"taskstream/domain/ports"
	"taskstream/pkg/logger"
)

// Subscriber receives task change events from every instance and hands them
// to the registered handler.
type Subscriber struct {
	conn      *nats.Conn
	sub       *nats.Subscription
	handler   func(*ports.TaskChangedEvent)
	running   bool
	runningMu sync.Mutex
}

func NewSubscriber(client *Client) *Subscriber {
	return &Subscriber{conn: client.conn}
}

var _ ports.TaskEventSubscriber = (*Subscriber)(nil)

func (s *Subscriber) Subscribe(ctx context.Context, handler func(*ports.TaskChangedEvent)) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.running {
		return nil
	}

	s.handler = handler

	sub, err := s.conn.Subscribe(SubjectTaskChangedAll, s.handleMessage)
	if err != nil {
		return err
	}
	s.sub = sub
	s.running = true

	logger.Info("NATS subscriber started", "subject", SubjectTaskChangedAll)
	return nil
}

func (s *Subscriber) handleMessage(msg *nats.Msg) {
	var event ports.TaskChangedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Warn("Malformed task change event", "subject", msg.Subject, "error", err)
		return
	}

	if event.UserID == "" {
		logger.Warn("Task change event without user id", "subject", msg.Subject)
		return
	}

	s.handler(&event)
}

func (s *Subscriber) Unsubscribe() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.sub != nil {
		return s.sub.Unsubscribe()
	}
	return nil
}
