package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/timeseller/timeseller-api/internal/handler"    // import the handlers that implement business logic
	"github.com/timeseller/timeseller-api/internal/middleware" // import middleware for JWT authentication and seller gating
	"github.com/timeseller/timeseller-api/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account endpoints.  All three operate without
// a session: check-nickname and register feed the signup flow, and both
// register and login hand back a fresh bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/auth")
	g.POST("/check-nickname", a.CheckNickname)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterExperience registers the experience catalogue.  Browsing is
// public (optionally behind the response cache); creation requires a valid
// token plus a fresh seller check against storage.  The extra middlewares
// are appended after any per-route cache middleware.
func RegisterExperience(e *echo.Echo, h *handler.ExperienceHandler, jwtSecret string, users *repository.UserRepo, public ...echo.MiddlewareFunc) {
	e.GET("/experience", h.List, public...)
	e.GET("/experience/:id", h.Get, public...)
	e.POST("/experience", h.Create, middleware.JWTAuth(jwtSecret), middleware.RequireSeller(users))
}

// RegisterReservation registers the booking endpoints, all behind JWTAuth.
func RegisterReservation(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/reservation", middleware.JWTAuth(jwtSecret))
	g.POST("", h.Create)
	g.GET("/my", h.My)
}

// RegisterReview registers the review endpoints, all behind JWTAuth.
func RegisterReview(e *echo.Echo, h *handler.ReviewHandler, jwtSecret string) {
	g := e.Group("/review", middleware.JWTAuth(jwtSecret))
	g.POST("", h.Create)
	g.GET("/my", h.My)
}

// RegisterSeller registers the public seller-application endpoint.
func RegisterSeller(e *echo.Echo, h *handler.SellerHandler) {
	e.POST("/seller/apply", h.Apply)
}

// RegisterSellerPage registers the seller dashboards.  Both routes run the
// JWT gate followed by the storage-backed seller check.
func RegisterSellerPage(e *echo.Echo, h *handler.SellerPageHandler, jwtSecret string, users *repository.UserRepo) {
	g := e.Group("/sellerpage", middleware.JWTAuth(jwtSecret), middleware.RequireSeller(users))
	g.GET("/my-experiences", h.MyExperiences)
	g.GET("/my-reservations", h.MyReservations)
}

// HTTPErrorHandler returns a top-level error handler that keeps the error
// body shape uniform ({"error": message}) and never leaks internals: any
// unexpected failure surfaces as a generic 500.
func HTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := "internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if code < http.StatusInternalServerError {
				if s, ok := he.Message.(string); ok {
					msg = s
				} else {
					msg = http.StatusText(code)
				}
			}
		}
		if err := c.JSON(code, echo.Map{"error": msg}); err != nil {
			c.Logger().Error(err)
		}
	}
}
