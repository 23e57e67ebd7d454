package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis keys for the request counters read by the health endpoint.
const (
	KeyReqTotal  = "health:global:req_total"
	KeyReqErrors = "health:global:req_errors"
	KeyResTime   = "health:global:res_time_total"
	KeyResCount  = "health:global:res_count"
	KeyStartTime = "health:global:start_time"
	KeyLastReq   = "health:global:last_request"
	KeyErrorLog  = "health:global:error_log"

	errorLogSize = 50
)

// HealthMarker records request stats in Redis. Health routes and the root are not counted.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/" || strings.Contains(path, "/health") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		ctx := context.Background()
		b, _ := json.Marshal(map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		})
		rdb.Set(ctx, KeyLastReq, b, 0)
		rdb.Incr(ctx, KeyReqTotal)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the error handler has not written the response yet
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		rdb.Incr(ctx, KeyResCount)
		rdb.IncrByFloat(ctx, KeyResTime, float64(time.Since(start).Milliseconds()))
		if status >= fiber.StatusInternalServerError {
			rdb.Incr(ctx, KeyReqErrors)
			entry, _ := json.Marshal(map[string]interface{}{
				"time":     time.Now(),
				"method":   c.Method(),
				"path":     c.OriginalURL(),
				"status":   status,
				"trace_id": GetTraceID(c),
			})
			rdb.LPush(ctx, KeyErrorLog, entry)
			rdb.LTrim(ctx, KeyErrorLog, 0, errorLogSize-1)
		}
		return err
	}
}
