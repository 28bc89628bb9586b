package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskstream/domain/apperrors"
	"taskstream/domain/dto"
	"taskstream/domain/services"
	"taskstream/pkg/logger"
	"taskstream/pkg/utils"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		details := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", details)
		return utils.ValidationErrorResponse(c, details)
	}

	logger.InfoContext(ctx, "Registration attempt", "email", req.Email)

	token, user, err := h.userService.Register(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Registration failed", "email", req.Email, "reason", err.Error())
		return identityErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, &dto.AuthResponse{
		Token: token,
		User:  *dto.UserToUserResponse(user),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		details := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", details)
		return utils.ValidationErrorResponse(c, details)
	}

	logger.InfoContext(ctx, "Login attempt", "email", req.Email)

	token, user, err := h.userService.Login(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Login failed", "email", req.Email, "reason", err.Error())
		return identityErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, &dto.AuthResponse{
		Token: token,
		User:  *dto.UserToUserResponse(user),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	token := utils.ExtractTokenFromHeader(c.Get("Authorization"))

	if err := h.userService.Logout(ctx, user.ID, token); err != nil {
		logger.ErrorContext(ctx, "Logout failed", "user_id", user.ID, "error", err)
		return identityErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, &dto.LogoutResponse{Message: "Signed out"})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	profile, err := h.userService.GetProfile(ctx, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Profile not found", "user_id", user.ID)
		return identityErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.UserToUserResponse(profile))
}

// identityErrorResponse maps the identity error taxonomy onto HTTP statuses.
func identityErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrInvalidIdentifier):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, apperrors.ErrWeakCredential):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, apperrors.ErrAccountExists):
		return utils.ConflictResponse(c, err.Error())
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, apperrors.ErrWrongCredential):
		return utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, apperrors.ErrRateLimited):
		return utils.RateLimitedResponse(c, err.Error())
	default:
		return utils.InternalServerErrorResponse(c)
	}
}
