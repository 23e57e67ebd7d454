package middleware

import (
	"strings"

	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig allows origins by suffix, or any origin presenting the dev password.
type CORSConfig struct {
	AllowedSuffix string
	DevPassword   string
}

// CORS answers preflights and sets credentialed CORS headers for allowed origins.
// Requests without an Origin header pass through.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if origin == "" {
			return c.Next()
		}
		if !originAllowed(c, cfg, origin) {
			return response.Error(c, "Not allowed by CORS", fiber.StatusForbidden, nil)
		}
		setCORSHeaders(c, origin)
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func originAllowed(c *fiber.Ctx, cfg CORSConfig, origin string) bool {
	lower := strings.ToLower(origin)
	switch {
	case strings.HasPrefix(lower, "http://localhost:"), strings.HasPrefix(lower, "http://127.0.0.1:"):
		return true
	case cfg.AllowedSuffix != "" && strings.HasSuffix(lower, strings.ToLower(cfg.AllowedSuffix)):
		return true
	case cfg.DevPassword != "" && c.Get("dev-password") == cfg.DevPassword:
		return true
	}
	return false
}

func setCORSHeaders(c *fiber.Ctx, origin string) {
	c.Set("Access-Control-Allow-Origin", origin)
	c.Set("Access-Control-Allow-Credentials", "true")
	c.Set("Access-Control-Allow-Headers", "Content-Type, dev-password, X-Trace-Id")
	c.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	c.Set("Vary", "Origin")
}
