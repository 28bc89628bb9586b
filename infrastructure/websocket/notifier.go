package websocket

import (
	"github.com/google/uuid"

	"taskstream/domain/ports"
)

// StatusMessage is the payload of a "status" frame; the web client shows it
// as a toast.
type StatusMessage struct {
	Level   string `json:"level"` // success, error
	Message string `json:"message"`
}

// Notifier delivers per-mutation status notices over the user's feed
// connection.
type Notifier struct {
	manager *Manager
}

func NewNotifier(manager *Manager) *Notifier {
	return &Notifier{manager: manager}
}

var _ ports.StatusNotifier = (*Notifier)(nil)

func (n *Notifier) NotifySuccess(userID uuid.UUID, message string) {
	n.manager.BroadcastToUser(userID, MessageTypeStatus, StatusMessage{
		Level:   "success",
		Message: message,
	})
}

func (n *Notifier) NotifyError(userID uuid.UUID, message string) {
	n.manager.BroadcastToUser(userID, MessageTypeStatus, StatusMessage{
		Level:   "error",
		Message: message,
	})
}
