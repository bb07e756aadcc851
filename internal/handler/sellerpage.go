package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timeseller/timeseller-api/internal/repository"
)

// SellerPageHandler serves the seller dashboards. Routes are wrapped by
// JWTAuth and RequireSeller; both endpoints are pure projections with no
// mutation.
type SellerPageHandler struct {
	Experiences  *repository.ExperienceRepo
	Reservations *repository.ReservationRepo
	Reviews      *repository.ReviewRepo
}

func NewSellerPageHandler(e *repository.ExperienceRepo, rs *repository.ReservationRepo, rv *repository.ReviewRepo) *SellerPageHandler {
	if e == nil || rs == nil || rv == nil {
		panic("nil repository passed to NewSellerPageHandler")
	}
	return &SellerPageHandler{Experiences: e, Reservations: rs, Reviews: rv}
}

// MyExperiences handles GET /sellerpage/my-experiences: the caller's own
// experiences, each with its reservations and reviews nested.
func (h *SellerPageHandler) MyExperiences(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	ctx := c.Request().Context()

	exps, err := h.Experiences.ListBySeller(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	ids := make([]uint64, len(exps))
	for i, e := range exps {
		ids[i] = e.ID
	}
	reservations, err := h.Reservations.ListForExperiences(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	reviews, err := h.Reviews.ListForExperiences(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	resByExp := make(map[uint64][]reservationJSON)
	for _, r := range reservations {
		resByExp[r.ExperienceID] = append(resByExp[r.ExperienceID], toReservationJSON(r))
	}
	revByExp := make(map[uint64][]reviewJSON)
	for _, r := range reviews {
		revByExp[r.ExperienceID] = append(revByExp[r.ExperienceID], toReviewJSON(r))
	}

	type sellerExperienceJSON struct {
		experienceJSON
		Reviews      []reviewJSON      `json:"reviews"`
		Reservations []reservationJSON `json:"reservations"`
	}
	out := make([]sellerExperienceJSON, 0, len(exps))
	for _, e := range exps {
		j := sellerExperienceJSON{experienceJSON: toExperienceJSON(e)}
		j.Reviews = revByExp[e.ID]
		if j.Reviews == nil {
			j.Reviews = []reviewJSON{}
		}
		j.Reservations = resByExp[e.ID]
		if j.Reservations == nil {
			j.Reservations = []reservationJSON{}
		}
		out = append(out, j)
	}
	return c.JSON(http.StatusOK, out)
}

// MyReservations handles GET /sellerpage/my-reservations: reservations
// against the caller's experiences, with the experience and buyer nested.
func (h *SellerPageHandler) MyReservations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	list, err := h.Reservations.ListForSeller(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]reservationJSON, 0, len(list))
	for _, r := range list {
		j := toReservationJSON(r.Reservation)
		exp := toExperienceJSON(r.Experience)
		j.Experience = &exp
		j.User = &buyerJSON{ID: r.Buyer.ID, Nickname: r.Buyer.Nickname, Name: nullStr(r.Buyer.Name)}
		out = append(out, j)
	}
	return c.JSON(http.StatusOK, out)
}
