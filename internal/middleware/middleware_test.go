package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb
}

func TestSession_RoundTrip(t *testing.T) {
	rdb := setupRedis(t)
	app := fiber.New()
	app.Use(Session(rdb))
	app.Post("/login", func(c *fiber.Ctx) error {
		sid := RegenerateSessionID(c)
		SetSessionUser(c, SessionUser{UserID: "1", Name: "demo", Email: "demo@example.com"})
		return c.SendString(sid)
	})
	app.Get("/me", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	sid := string(body)
	require.NotEmpty(t, sid)

	stored, err := rdb.Get(context.Background(), SessionRedisPrefix+sid).Result()
	require.NoError(t, err)
	assert.Contains(t, stored, `"user_id":"1"`)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", SessionCookieName+"=s:"+sid)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "1", string(body))
}

func TestRequireAuth_NoSession(t *testing.T) {
	rdb := setupRedis(t)
	app := fiber.New()
	app.Use(Session(rdb))
	app.Get("/me", RequireAuth(), func(c *fiber.Ctx) error { return c.SendStatus(200) })

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", SessionCookieName+"=s:unknown")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionUserFrom(t *testing.T) {
	u, ok := SessionUserFrom(map[string]interface{}{"user_id": "9", "email": "x@y.io"})
	require.True(t, ok)
	assert.Equal(t, "9", u.UserID)
	assert.Equal(t, "x@y.io", u.Email)

	_, ok = SessionUserFrom(nil)
	assert.False(t, ok)
	_, ok = SessionUserFrom(SessionUser{})
	assert.False(t, ok)
}

func TestTracing(t *testing.T) {
	app := fiber.New()
	app.Use(Tracing())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetTraceID(c)) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(traceIDHeader), 36)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(traceIDHeader, "0b9f6f0e-6a63-4d4b-9f3e-2f5f1a0d9c11")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "0b9f6f0e-6a63-4d4b-9f3e-2f5f1a0d9c11", resp.Header.Get(traceIDHeader))
}

func TestGetTraceID_WithoutTracing(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("[" + GetTraceID(c) + "]") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "[]", string(body))
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS(CORSConfig{AllowedSuffix: ".estate.example", DevPassword: "letmein"}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(200) })

	tests := []struct {
		name   string
		origin string
		header string
		method string
		want   int
	}{
		{"no origin", "", "", "GET", 200},
		{"suffix", "https://app.estate.example", "", "GET", 200},
		{"localhost preflight", "http://localhost:5173", "", "OPTIONS", 204},
		{"dev password", "https://elsewhere.io", "letmein", "GET", 200},
		{"blocked", "https://evil.io", "", "GET", 403},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.header != "" {
				req.Header.Set("dev-password", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
			if tc.want != 403 && tc.origin != "" {
				assert.Equal(t, tc.origin, resp.Header.Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestHealthMarker_CountsRequests(t *testing.T) {
	rdb := setupRedis(t)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(HealthMarker(rdb))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(200) })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Get("/health/json", func(c *fiber.Ctx) error { return c.SendStatus(200) })

	for _, path := range []string{"/ok", "/boom", "/health/json"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
	}

	ctx := context.Background()
	total, err := rdb.Get(ctx, KeyReqTotal).Int()
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	failed, err := rdb.Get(ctx, KeyReqErrors).Int()
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	entries, err := rdb.LRange(ctx, KeyErrorLog, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0], `"path":"/boom"`)
}

func TestRecover(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(Recover())
	app.Get("/", func(c *fiber.Ctx) error { panic("desync") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
