package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/timeseller/timeseller-api/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer token and
// injects the authenticated user's ID into the request context under
// "user_id".  Only the user identifier travels in the token: role data is
// never trusted from claims and is re-fetched from storage where needed.
// A missing or malformed Authorization header and a failed verification
// both produce 401; the two bodies differ but neither reveals why
// verification failed.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, err := utils.ParseUserToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}
