package middleware

import (
	"items-admin-backend/config"
	"items-admin-backend/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AccessTokenCookie = "access_token"
	userLocalsKey     = "user"
)

// TokenVerifier is the part of token.Maker the middleware needs.
type TokenVerifier interface {
	VerifyToken(token string) (*token.Payload, error)
}

// ProtectedRoute admits requests carrying a valid access token cookie and
// stores its payload in c.Locals("user").
func ProtectedRoute(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies(AccessTokenCookie)
		if accessToken == "" {
			config.Logger.Debug("No access token provided in request")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
				"data":    nil,
				"error":   "Authentication required",
			})
		}

		payload, err := verifier.VerifyToken(accessToken)
		if err != nil {
			config.Logger.Debug("Invalid access token encountered", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
				"data":    nil,
				"error":   "Session expired or invalid. Please log in again.",
			})
		}

		c.Locals(userLocalsKey, payload)
		return c.Next()
	}
}

// CurrentUser returns the payload set by ProtectedRoute, or nil.
func CurrentUser(c *fiber.Ctx) *token.Payload {
	payload, _ := c.Locals(userLocalsKey).(*token.Payload)
	return payload
}
