package auth

import (
	"context"
	"errors"

	authsvc "estate-backend/internal/application/auth"
	"estate-backend/internal/domain"
	"estate-backend/internal/middleware"
	"estate-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Directory  *authsvc.Directory // signup target, optional
	UserFinder authsvc.UserFinder
	Rdb        *redis.Client
	Config     middleware.SessionConfig
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Signup POST /api/v1/auth/signup
func (h *Handlers) Signup(c *fiber.Ctx) error {
	if h.Directory == nil {
		return response.Error(c, "Signup is disabled", fiber.StatusNotImplemented, nil)
	}
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.Directory.Register(req.Email, req.Name, req.Password)
	switch {
	case errors.Is(err, authsvc.ErrEmailTaken):
		return response.Error(c, err.Error(), fiber.StatusConflict, nil)
	case errors.Is(err, authsvc.ErrEmailPasswordRequired), errors.Is(err, authsvc.ErrInvalidEmail),
		errors.Is(err, authsvc.ErrInvalidName), errors.Is(err, authsvc.ErrPasswordTooShort):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case err != nil:
		log.Error().Err(err).Msg("auth: signup failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	if err := h.startSession(c, user); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Signup successful", fiber.Map{"user": user}, nil)
}

// Login POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.UserFinder == nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.UserFinder.FindByEmailAndPassword(req.Email, req.Password)
	if err != nil {
		switch err {
		case authsvc.ErrEmailPasswordRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case authsvc.ErrInvalidEmail, authsvc.ErrInvalidCredentials:
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	if err := h.startSession(c, user); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Login successful", fiber.Map{"user": user}, nil)
}

// startSession issues a fresh session id, stores the user in it, tracks the id
// under user_sessions:<id> and sets the cookie.
func (h *Handlers) startSession(c *fiber.Ctx, user *domain.User) error {
	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})

	if err := authsvc.TrackSession(context.Background(), h.Rdb, user.ID, sessionID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("auth: track session")
		return err
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)
	return nil
}

// Me GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, err := authsvc.VerifyUser(middleware.GetUser(c))
	if err != nil {
		log.Debug().Str("path", "/auth/me").Bool("session", middleware.GetSessionID(c) != "").
			Msg("auth/me: not authenticated")
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	ctx := context.Background()

	if user, err := authsvc.VerifyUser(middleware.GetUser(c)); err == nil && sessionID != "" {
		_ = h.Rdb.SRem(ctx, authsvc.UserSessionsPrefix+user.UserID, sessionID).Err()
	}
	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}

// LogoutAll DELETE /api/v1/auth/sessions ends every session of the current user.
func (h *Handlers) LogoutAll(c *fiber.Ctx) error {
	user, err := authsvc.VerifyUser(middleware.GetUser(c))
	if err != nil {
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	n, err := authsvc.DestroyUserSessions(context.Background(), h.Rdb, user.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.UserID).Msg("auth: destroy sessions")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "All sessions ended", fiber.Map{"sessions": n}, nil)
}
