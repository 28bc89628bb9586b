package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskstream/interfaces/api/handlers"
	"taskstream/interfaces/api/middleware"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers, auth *middleware.AuthMiddleware) {
	tasks := api.Group("/tasks")
	tasks.Use(auth.Protected())
	tasks.Get("/", h.TaskHandler.ListTasks)
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Patch("/:id", h.TaskHandler.UpdateTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
}
