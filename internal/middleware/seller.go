package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timeseller/timeseller-api/internal/repository"
)

// RequireSeller returns a middleware that allows the request through only
// when the authenticated user currently has the seller flag set.  The flag
// is re-fetched from storage on every request rather than read from a token
// claim, so a role change takes effect on the next request with the same
// token.  It assumes JWTAuth already stored the user ID in the context.
func RequireSeller(users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("user_id")
			userID, ok := v.(uint64)
			if !ok || userID == 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			u, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				if err == repository.ErrUserNotFound {
					return c.JSON(http.StatusForbidden, echo.Map{"error": "sellers only"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
			}
			if !u.IsSeller {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "sellers only"})
			}
			return next(c)
		}
	}
}
