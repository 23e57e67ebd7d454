package middleware

import (
	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	userLocal = "user"
	authLocal = "auth"
)

// RequireAuth rejects requests without a session user with 401.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := SessionUserFrom(c.Locals(userLocal))
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		c.Locals(authLocal, u)
		return c.Next()
	}
}

// GetUser returns the raw session user (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// UserID returns the authenticated user's id, or "" outside RequireAuth.
func UserID(c *fiber.Ctx) string {
	if u, ok := c.Locals(authLocal).(*SessionUser); ok && u != nil {
		return u.UserID
	}
	if u, ok := SessionUserFrom(c.Locals(userLocal)); ok {
		return u.UserID
	}
	return ""
}
