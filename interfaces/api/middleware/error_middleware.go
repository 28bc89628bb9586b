package middleware

import (
	"github.com/gofiber/fiber/v2"

	"taskstream/pkg/logger"
	"taskstream/pkg/utils"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := utils.ErrCodeInternalError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
			switch code {
			case fiber.StatusBadRequest:
				errCode = utils.ErrCodeBadRequest
			case fiber.StatusUnauthorized:
				errCode = utils.ErrCodeUnauthorized
			case fiber.StatusForbidden:
				errCode = utils.ErrCodeForbidden
			case fiber.StatusNotFound:
				errCode = utils.ErrCodeNotFound
			case fiber.StatusConflict:
				errCode = utils.ErrCodeConflict
			case fiber.StatusTooManyRequests:
				errCode = utils.ErrCodeRateLimited
			}
		}

		logger.ErrorContext(c.UserContext(), "Unhandled error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)

		return utils.ErrorResponse(c, code, errCode, message, nil)
	}
}
