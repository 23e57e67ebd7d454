package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionConfig for the Redis-backed session.
type SessionConfig struct {
	Secret            string
	RedisURL          string
	AllowCrossSiteDev bool
	IsProduction      bool
}

const (
	SessionCookieName  = "estate.sid"
	SessionRedisPrefix = "session:"
	sessionMaxAge      = 24 * time.Hour
)

// SessionUser is the shape stored in the session under "user".
type SessionUser struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// NewRedis parses a redis:// URL into a client.
func NewRedis(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opt), nil
}

// Session loads the session named by the estate.sid cookie from Redis before the
// handler runs and saves it back afterwards.
func Session(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(SessionCookieName)
		// cookie is "s:id" or "s:id.signature"
		if strings.HasPrefix(sessionID, "s:") {
			parts := strings.SplitN(sessionID[2:], ".", 2)
			sessionID = parts[0]
		}

		var data map[string]interface{}
		if sessionID != "" {
			b, err := rdb.Get(c.UserContext(), SessionRedisPrefix+sessionID).Bytes()
			if err == nil {
				_ = json.Unmarshal(b, &data)
			} else if err != redis.Nil {
				log.Warn().Err(err).Msg("session: redis read failed")
			}
		}
		if data == nil {
			data = make(map[string]interface{})
		}

		c.Locals("session_data", data)
		if u, ok := data["user"]; ok {
			c.Locals(userLocal, u)
		} else {
			c.Locals(userLocal, nil)
		}
		c.Locals("session_id", sessionID)

		if err := c.Next(); err != nil {
			return err
		}

		if sid, _ := c.Locals("session_id").(string); sid != "" {
			if updated, _ := c.Locals("session_data").(map[string]interface{}); len(updated) > 0 {
				b, _ := json.Marshal(updated)
				rdb.Set(context.Background(), SessionRedisPrefix+sid, b, sessionMaxAge)
			}
		}
		return nil
	}
}

// GetSessionID returns the current session id.
func GetSessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals("session_id").(string)
	return sid
}

// SetSessionUser stores the user in the session. Call RegenerateSessionID first.
func SetSessionUser(c *fiber.Ctx, user SessionUser) {
	data, _ := c.Locals("session_data").(map[string]interface{})
	if data == nil {
		data = make(map[string]interface{})
	}
	data["user"] = map[string]interface{}{
		"user_id": user.UserID,
		"name":    user.Name,
		"email":   user.Email,
	}
	c.Locals("session_data", data)
	c.Locals(userLocal, data["user"])
}

// SessionUserFrom decodes the session's user value. Values read back from Redis
// are maps; values set during the request may be either shape.
func SessionUserFrom(v interface{}) (*SessionUser, bool) {
	switch u := v.(type) {
	case SessionUser:
		return &u, u.UserID != ""
	case *SessionUser:
		return u, u != nil && u.UserID != ""
	case map[string]interface{}:
		id, _ := u["user_id"].(string)
		if id == "" {
			return nil, false
		}
		name, _ := u["name"].(string)
		email, _ := u["email"].(string)
		return &SessionUser{UserID: id, Name: name, Email: email}, true
	}
	return nil, false
}

// RegenerateSessionID assigns a new session id; the handler sets the cookie.
func RegenerateSessionID(c *fiber.Ctx) string {
	newID := uuid.New().String()
	c.Locals("session_id", newID)
	return newID
}

// DestroySession clears the session locals; the caller clears the cookie and Redis key.
func DestroySession(c *fiber.Ctx) {
	c.Locals("session_data", make(map[string]interface{}))
	c.Locals(userLocal, nil)
	c.Locals("session_id", "")
}

// SessionCookieConfig returns the cookie options used for set and clear.
func SessionCookieConfig(cfg SessionConfig) fiber.Cookie {
	sameSite := "Lax"
	if cfg.AllowCrossSiteDev {
		sameSite = "None"
	}
	return fiber.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.IsProduction || cfg.AllowCrossSiteDev,
		SameSite: sameSite,
	}
}
