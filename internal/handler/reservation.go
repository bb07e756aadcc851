package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timeseller/timeseller-api/internal/repository"
)

// ReservationHandler serves reservation creation and the buyer's own
// reservation listing. All routes are behind JWTAuth.
type ReservationHandler struct {
	Experiences  *repository.ExperienceRepo
	Reservations *repository.ReservationRepo
}

func NewReservationHandler(e *repository.ExperienceRepo, r *repository.ReservationRepo) *ReservationHandler {
	if e == nil || r == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Experiences: e, Reservations: r}
}

type createReservationReq struct {
	ExperienceID uint64 `json:"experienceId"`
}

// Create handles POST /reservation. The only precondition is that the
// experience exists; duplicate reservations and sellers booking their own
// experiences are allowed.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()

	if _, err := h.Experiences.GetByID(ctx, req.ExperienceID); err != nil {
		if err == repository.ErrExperienceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "experience not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	res, err := h.Reservations.Create(ctx, req.ExperienceID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	return c.JSON(http.StatusOK, toReservationJSON(res))
}

// My handles GET /reservation/my: the caller's reservations with the
// experience nested.
func (h *ReservationHandler) My(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	list, err := h.Reservations.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]reservationJSON, 0, len(list))
	for _, r := range list {
		j := toReservationJSON(r.Reservation)
		exp := toExperienceJSON(r.Experience)
		j.Experience = &exp
		out = append(out, j)
	}
	return c.JSON(http.StatusOK, out)
}
