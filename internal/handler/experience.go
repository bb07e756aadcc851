package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/timeseller/timeseller-api/internal/repository"
)

// ExperienceHandler serves the public experience catalogue and the
// seller-gated create endpoint.
type ExperienceHandler struct {
	Experiences *repository.ExperienceRepo
	Reviews     *repository.ReviewRepo
}

func NewExperienceHandler(e *repository.ExperienceRepo, r *repository.ReviewRepo) *ExperienceHandler {
	if e == nil || r == nil {
		panic("nil repository passed to NewExperienceHandler")
	}
	return &ExperienceHandler{Experiences: e, Reviews: r}
}

// experienceDetailJSON is the catalogue shape: an experience with its
// reviews always present, even when empty.
type experienceDetailJSON struct {
	experienceJSON
	Reviews []reviewJSON `json:"reviews"`
}

type createExperienceReq struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	PricePerHour *int64 `json:"pricePerHour"`
}

// Create handles POST /experience. The route is wrapped by JWTAuth and
// RequireSeller, so by the time this runs the caller is a user whose seller
// flag was just re-read from storage.
func (h *ExperienceHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req createExperienceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	exp, err := h.Experiences.Create(c.Request().Context(), req.Title, req.Description, req.Category, req.PricePerHour, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create experience failed"})
	}
	return c.JSON(http.StatusOK, toExperienceJSON(exp))
}

// List handles GET /experience: every experience with its seller projection
// and reviews nested. Public, no auth.
func (h *ExperienceHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	exps, err := h.Experiences.ListWithSeller(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	ids := make([]uint64, len(exps))
	for i, e := range exps {
		ids[i] = e.ID
	}
	reviews, err := h.Reviews.ListForExperiences(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	byExp := make(map[uint64][]reviewJSON)
	for _, rv := range reviews {
		byExp[rv.ExperienceID] = append(byExp[rv.ExperienceID], toReviewJSON(rv))
	}

	out := make([]experienceDetailJSON, 0, len(exps))
	for _, e := range exps {
		j := experienceDetailJSON{experienceJSON: toExperienceJSON(e.Experience)}
		j.Seller = &sellerJSON{ID: e.Seller.ID, Nickname: e.Seller.Nickname}
		j.Reviews = byExp[e.ID]
		if j.Reviews == nil {
			j.Reviews = []reviewJSON{}
		}
		out = append(out, j)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /experience/:id. A non-numeric id falls through to the
// same 404 as a missing row.
func (h *ExperienceHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "experience not found"})
	}
	ctx := c.Request().Context()

	exp, err := h.Experiences.GetWithSeller(ctx, id)
	if err != nil {
		if err == repository.ErrExperienceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "experience not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	reviews, err := h.Reviews.ListForExperiences(ctx, []uint64{id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	j := experienceDetailJSON{experienceJSON: toExperienceJSON(exp.Experience)}
	j.Seller = &sellerJSON{ID: exp.Seller.ID, Nickname: exp.Seller.Nickname}
	j.Reviews = make([]reviewJSON, 0, len(reviews))
	for _, rv := range reviews {
		j.Reviews = append(j.Reviews, toReviewJSON(rv))
	}
	return c.JSON(http.StatusOK, j)
}
