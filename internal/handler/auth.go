package handler

import (
	"context"  // provides context with cancellation for DB calls
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/timeseller/timeseller-api/internal/config"     // app configuration
	"github.com/timeseller/timeseller-api/internal/repository" // DB repositories
	"github.com/timeseller/timeseller-api/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type checkNicknameReq struct {
	Nickname string `json:"nickname"`
}
type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Name     string `json:"name"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type authResp struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

// CheckNickname reports whether a nickname is still free. It is a pure
// read used by the signup form before submission; it does not reserve the
// nickname, so a concurrent registration can still win the race (the unique
// index decides).
func (h *AuthHandler) CheckNickname(c echo.Context) error {
	var req checkNicknameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nickname is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Users.NicknameExists(ctx, nickname)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if exists {
		return c.JSON(http.StatusOK, echo.Map{"available": false, "message": "this nickname is already taken"})
	}
	return c.JSON(http.StatusOK, echo.Map{"available": true, "message": "this nickname is available"})
}

// Register creates a user and returns a token immediately (auto-login).
// Validation order matters: required fields, password policy, email
// uniqueness, nickname uniqueness. The insert itself can still surface a
// duplicate when a concurrent registration slipped past the pre-checks, and
// that maps onto the same 409 responses.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Nickname = strings.TrimSpace(req.Nickname)
	if req.Email == "" || req.Password == "" || req.Nickname == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password and nickname are required"})
	}
	if !utils.ValidPassword(req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters and contain both letters and numbers"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if exists, err := h.Users.EmailExists(ctx, req.Email); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	} else if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}
	if exists, err := h.Users.NicknameExists(ctx, req.Nickname); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	} else if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "nickname already taken"})
	}

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.Nickname, req.Name, h.Cfg.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		case repository.ErrNicknameExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "nickname already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	token, err := utils.NewUserToken(h.Cfg.JWTSecret, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, authResp{Token: token.Token, User: toUserJSON(u)})
}

// Login verifies credentials and returns a fresh token. There is no
// lockout or attempt counting; every failure is independent and stateless.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "wrong password"})
	}

	token, err := utils.NewUserToken(h.Cfg.JWTSecret, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, authResp{Token: token.Token, User: toUserJSON(u)})
}
