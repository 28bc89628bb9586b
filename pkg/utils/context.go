package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// GetUserFromContext returns the identity the auth middleware attached to
// the request.
func GetUserFromContext(c *fiber.Ctx) (*UserContext, error) {
	user := c.Locals("user")
	if user == nil {
		return nil, errors.New("user not found in context")
	}

	userCtx, ok := user.(*UserContext)
	if !ok {
		return nil, errors.New("invalid user context type")
	}

	return userCtx, nil
}
