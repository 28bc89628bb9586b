package middleware

import (
	"github.com/gofiber/fiber/v2"

	"taskstream/infrastructure/redis"
	"taskstream/pkg/logger"
	"taskstream/pkg/utils"
)

type AuthMiddleware struct {
	jwtSecret string
	denylist  *redis.TokenDenylist
}

func NewAuthMiddleware(jwtSecret string, denylist *redis.TokenDenylist) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: jwtSecret, denylist: denylist}
}

// Protected validates the bearer token, rejects revoked tokens, and sets the
// user context in fiber locals.
func (m *AuthMiddleware) Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization header")
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		userCtx, err := utils.ValidateToken(token, m.jwtSecret)
		if err != nil {
			logger.WarnContext(c.UserContext(), "Token validation failed", "error", err)
			switch err {
			case utils.ErrExpiredToken:
				return utils.UnauthorizedResponse(c, "Token has expired")
			case utils.ErrInvalidToken:
				return utils.UnauthorizedResponse(c, "Invalid token")
			case utils.ErrMissingToken:
				return utils.UnauthorizedResponse(c, "Missing token")
			default:
				return utils.UnauthorizedResponse(c, "Token validation failed")
			}
		}

		if m.denylist != nil && m.denylist.IsRevoked(c.UserContext(), token) {
			return utils.UnauthorizedResponse(c, "Token has been revoked")
		}

		c.Locals("user", userCtx)

		return c.Next()
	}
}
