package handlers

import (
	"taskstream/domain/services"
)

// Services carries everything the HTTP layer needs.
type Services struct {
	UserService services.UserService
	TaskService services.TaskService
	FeedService services.FeedService
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	AuthHandler *AuthHandler
	TaskHandler *TaskHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler: NewAuthHandler(services.UserService),
		TaskHandler: NewTaskHandler(services.TaskService, services.FeedService),
	}
}
