package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskstream/domain/apperrors"
	"taskstream/domain/dto"
	"taskstream/domain/models"
	"taskstream/domain/services"
	"taskstream/pkg/logger"
	"taskstream/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
	feedService services.FeedService
}

func NewTaskHandler(taskService services.TaskService, feedService services.FeedService) *TaskHandler {
	return &TaskHandler{taskService: taskService, feedService: feedService}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		details := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", details)
		return utils.ValidationErrorResponse(c, details)
	}

	task, err := h.taskService.CreateTask(ctx, user.ID, &req)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "user_id", user.ID, "error", err)
		return taskErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	req, err := dto.ParseUpdateTaskRequest(c.Body())
	if err != nil {
		logger.WarnContext(ctx, "Rejected task update", "user_id", user.ID, "task_id", taskID, "reason", err.Error())
		if errors.Is(err, apperrors.ErrInvalidMutation) {
			return utils.BadRequestResponse(c, err.Error())
		}
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(req); err != nil {
		details := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", details)
		return utils.ValidationErrorResponse(c, details)
	}

	task, err := h.taskService.UpdateTask(ctx, user.ID, taskID, req)
	if err != nil {
		logger.WarnContext(ctx, "Failed to update task", "user_id", user.ID, "task_id", taskID, "error", err)
		return taskErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	if err := h.taskService.DeleteTask(ctx, user.ID, taskID); err != nil {
		logger.WarnContext(ctx, "Failed to delete task", "user_id", user.ID, "task_id", taskID, "error", err)
		return taskErrorResponse(c, err)
	}

	return utils.NoContentResponse(c)
}

// ListTasks returns the same full snapshot the websocket feed carries,
// optionally narrowed to a single category.
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	category := c.Query("category")
	if category != "" && !models.Category(category).Valid() {
		return utils.BadRequestResponse(c, "Unknown category")
	}

	snapshot, err := h.feedService.Snapshot(ctx, user.ID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build task snapshot", "user_id", user.ID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	if category != "" {
		return utils.SuccessResponse(c, dto.FilterSnapshot(snapshot, models.Category(category)))
	}

	return utils.SuccessResponse(c, snapshot)
}

func taskErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrInvalidMutation):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, apperrors.ErrTaskNotFound):
		return utils.NotFoundResponse(c, err.Error())
	default:
		return utils.InternalServerErrorResponse(c)
	}
}
