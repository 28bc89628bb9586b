package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskstream/interfaces/api/handlers"
	"taskstream/interfaces/api/middleware"
	apiwebsocket "taskstream/interfaces/api/websocket"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, auth *middleware.AuthMiddleware, wsHandler *apiwebsocket.WebSocketHandler) {
	// Health and root routes
	SetupHealthRoutes(app)

	// API version group
	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h, auth)
	SetupTaskRoutes(api, h, auth)

	// WebSocket routes (needs app, not api group)
	SetupWebSocketRoutes(app, wsHandler, auth)
}
