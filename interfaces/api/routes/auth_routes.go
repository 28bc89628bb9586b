package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskstream/interfaces/api/handlers"
	"taskstream/interfaces/api/middleware"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, auth *middleware.AuthMiddleware) {
	group := api.Group("/auth")

	group.Post("/register", h.AuthHandler.Register)
	group.Post("/login", h.AuthHandler.Login)

	// Protected routes - require authentication
	group.Post("/logout", auth.Protected(), h.AuthHandler.Logout)
	group.Get("/me", auth.Protected(), h.AuthHandler.GetProfile)
}
