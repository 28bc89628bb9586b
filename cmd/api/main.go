package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"taskstream/interfaces/api/middleware"
	"taskstream/interfaces/api/routes"
	apiwebsocket "taskstream/interfaces/api/websocket"
	"taskstream/pkg/di"
	"taskstream/pkg/logger"
)

func main() {
	container := di.NewContainer()

	if err := container.Initialize(); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	setupGracefulShutdown(container)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      container.Config.App.Name,
	})

	// Middleware order matters: request ID before logging.
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware())

	auth := middleware.NewAuthMiddleware(container.Config.JWT.Secret, container.TokenDenylist)
	wsHandler := apiwebsocket.NewWebSocketHandler(container.WebSocketManager, container.FeedService)

	routes.SetupRoutes(app, container.Handlers(), auth, wsHandler)

	port := container.Config.App.Port
	logger.Info("Server starting",
		"port", port,
		"env", container.Config.App.Env,
		"app", container.Config.App.Name,
	)
	logger.Info("Endpoints available",
		"health", "http://localhost:"+port+"/health",
		"api", "http://localhost:"+port+"/api/v1",
		"websocket", "ws://localhost:"+port+"/ws",
	)

	if err := app.Listen(":" + port); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")

		container.Cleanup()

		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}
