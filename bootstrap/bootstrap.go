package bootstrap

import (
	"estate-backend/internal/config"
	"estate-backend/internal/interfaces/router"
	"estate-backend/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for serverless deployment (the api handler imports
// this package, not internal). Snapshots are not scheduled here.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.LogLevel, false)
	app, _, err := router.CreateApp(cfg)
	return app, err
}
