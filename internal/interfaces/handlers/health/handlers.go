package health

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	healthsvc "estate-backend/internal/application/health"
	"estate-backend/internal/infrastructure/memstore"
	"estate-backend/internal/middleware"
	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb            *redis.Client
	DB             healthsvc.DBPinger
	Store          *memstore.Store
	HealthAdminKey string
}

// JSON GET /api/v1/health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), healthsvc.Sources{Redis: h.Rdb, DB: h.DB, Store: h.Store})
	return c.JSON(fiber.Map{
		"service":      "estate-api",
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"inventory":    result.Inventory,
		"dependencies": result.Dependencies,
	})
}

// Errors GET /api/v1/health/errors returns the most recent 5xx entries.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	entries, err := h.Rdb.LRange(context.Background(), middleware.KeyErrorLog, 0, 49).Result()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	out := make([]map[string]interface{}, 0, len(entries))
	for _, s := range entries {
		var m map[string]interface{}
		if json.Unmarshal([]byte(s), &m) == nil {
			out = append(out, m)
		}
	}
	return c.JSON(out)
}

// Reset POST /api/v1/health/reset?key= clears the request counters.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	ctx := context.Background()
	keys := []string{middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime,
		middleware.KeyResCount, middleware.KeyStartTime, middleware.KeyLastReq, middleware.KeyErrorLog}
	if err := h.Rdb.Del(ctx, keys...).Err(); err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	if err := h.Rdb.Set(ctx, middleware.KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err(); err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stats reset successfully", fiber.Map{"success": true}, nil)
}
