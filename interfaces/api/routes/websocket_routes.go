package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"taskstream/interfaces/api/middleware"
	apiwebsocket "taskstream/interfaces/api/websocket"
)

func SetupWebSocketRoutes(app *fiber.App, wsHandler *apiwebsocket.WebSocketHandler, auth *middleware.AuthMiddleware) {
	app.Use("/ws", auth.Protected(), wsHandler.WebSocketUpgrade)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
