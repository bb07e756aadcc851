package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timeseller/timeseller-api/internal/repository"
)

// ReviewHandler serves review creation and the author's own review listing.
// All routes are behind JWTAuth.
type ReviewHandler struct {
	Reservations *repository.ReservationRepo
	Reviews      *repository.ReviewRepo
}

func NewReviewHandler(rs *repository.ReservationRepo, rv *repository.ReviewRepo) *ReviewHandler {
	if rs == nil || rv == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Reservations: rs, Reviews: rv}
}

type createReviewReq struct {
	ExperienceID uint64 `json:"experienceId"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

// Create handles POST /review. Two preconditions, in order: the caller must
// hold a reservation for the experience (any reservation, there is no
// completion state), and must not have reviewed it before. The unique index
// on (experience_id, user_id) backs the second check against races, so a
// duplicate insert comes back as the same 409.
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()

	reserved, err := h.Reservations.ExistsForUser(ctx, req.ExperienceID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !reserved {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "review requires a reservation"})
	}

	reviewed, err := h.Reviews.ExistsForUser(ctx, req.ExperienceID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if reviewed {
		return c.JSON(http.StatusConflict, echo.Map{"error": "review already written"})
	}

	rv, err := h.Reviews.Create(ctx, req.ExperienceID, userID, req.Rating, req.Comment)
	if err != nil {
		if err == repository.ErrDuplicateReview {
			return c.JSON(http.StatusConflict, echo.Map{"error": "review already written"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusOK, toReviewJSON(rv))
}

// My handles GET /review/my: the caller's reviews with the experience
// nested.
func (h *ReviewHandler) My(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	list, err := h.Reviews.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	type reviewWithExpJSON struct {
		reviewJSON
		Experience experienceJSON `json:"experience"`
	}
	out := make([]reviewWithExpJSON, 0, len(list))
	for _, r := range list {
		out = append(out, reviewWithExpJSON{
			reviewJSON: toReviewJSON(r.Review),
			Experience: toExperienceJSON(r.Experience),
		})
	}
	return c.JSON(http.StatusOK, out)
}
