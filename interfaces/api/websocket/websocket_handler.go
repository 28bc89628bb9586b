package websocket

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"taskstream/domain/services"
	wsmanager "taskstream/infrastructure/websocket"
	"taskstream/pkg/logger"
	"taskstream/pkg/utils"
)

type WebSocketHandler struct {
	manager *wsmanager.Manager
	feed    services.FeedService
}

func NewWebSocketHandler(manager *wsmanager.Manager, feed services.FeedService) *WebSocketHandler {
	return &WebSocketHandler{manager: manager, feed: feed}
}

func (h *WebSocketHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleWebSocket streams full task snapshots to an authenticated client.
// The first frame is the current snapshot; every subsequent store change
// produces a fresh one.
func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userContext := c.Locals("user")
	user, ok := userContext.(*utils.UserContext)
	if !ok || user == nil {
		logger.Warn("WebSocket connection without user context rejected")
		c.Close()
		return
	}

	logger.Info("WebSocket connected", "user_id", user.ID, "email", user.Email)

	h.manager.RegisterClient(c, user.ID)
	defer h.manager.UnregisterClient(c)

	updates, cancel := h.feed.Subscribe(user.ID)
	defer cancel()

	// Initial snapshot so the client renders without waiting for a change.
	if snapshot, err := h.feed.Snapshot(context.Background(), user.ID); err != nil {
		logger.Error("Failed to build initial snapshot", "user_id", user.ID, "error", err)
	} else {
		h.manager.BroadcastToUser(user.ID, wsmanager.MessageTypeSnapshot, snapshot)
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case snapshot, open := <-updates:
				if !open {
					return
				}
				h.manager.BroadcastToUser(user.ID, wsmanager.MessageTypeSnapshot, snapshot)
			case <-done:
				return
			}
		}
	}()

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("WebSocket read ended", "user_id", user.ID, "error", err)
			break
		}

		if string(message) == "ping" {
			h.manager.BroadcastToUser(user.ID, wsmanager.MessageTypePong, nil)
		}
	}
}
