package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/timeseller/timeseller-api/internal/queue"
	"github.com/timeseller/timeseller-api/internal/repository"
	queuepublisher "github.com/timeseller/timeseller-api/internal/service"
)

// SellerHandler serves the public seller-application endpoint.
type SellerHandler struct {
	Applications *repository.SellerApplicationRepo
}

func NewSellerHandler(a *repository.SellerApplicationRepo) *SellerHandler {
	if a == nil {
		panic("nil repository passed to NewSellerHandler")
	}
	return &SellerHandler{Applications: a}
}

// applyReq accepts pricePerHour as either a number or a numeric string,
// matching what the signup form actually sends.
type applyReq struct {
	Email                 string      `json:"email"`
	Name                  string      `json:"name"`
	Phone                 string      `json:"phone"`
	KakaoID               string      `json:"kakaoId"`
	ExperienceTitle       string      `json:"experienceTitle"`
	ExperienceDescription string      `json:"experienceDescription"`
	ExperienceCategory    string      `json:"experienceCategory"`
	PricePerHour          interface{} `json:"pricePerHour"`
}

func coercePrice(v interface{}) sql.NullInt64 {
	switch t := v.(type) {
	case float64:
		return sql.NullInt64{Int64: int64(t), Valid: true}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return sql.NullInt64{Int64: n, Valid: true}
		}
	}
	return sql.NullInt64{}
}

// Apply handles POST /seller/apply. No authentication: applicants do not
// have accounts yet, and the application is never linked to a user row.
// After the insert a SellerAppliedEvent is published best-effort so the
// applicant gets a confirmation notification; a publish failure is logged
// and must never fail the request.
func (h *SellerHandler) Apply(c echo.Context) error {
	var req applyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Name == "" || req.ExperienceTitle == "" ||
		req.ExperienceDescription == "" || req.ExperienceCategory == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "required fields are missing"})
	}

	app := repository.SellerApplication{
		Email:                 strings.TrimSpace(req.Email),
		Name:                  strings.TrimSpace(req.Name),
		ExperienceTitle:       req.ExperienceTitle,
		ExperienceDescription: req.ExperienceDescription,
		ExperienceCategory:    req.ExperienceCategory,
		PricePerHour:          coercePrice(req.PricePerHour),
	}
	if req.Phone != "" {
		app.Phone = sql.NullString{String: req.Phone, Valid: true}
	}
	if req.KakaoID != "" {
		app.KakaoID = sql.NullString{String: req.KakaoID, Valid: true}
	}

	created, err := h.Applications.Create(c.Request().Context(), app)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	// Fire-and-forget: the publisher logs its own failures.
	_ = queuepublisher.PublishSellerApplied(c.Request().Context(), queue.SellerAppliedEvent{
		ApplicationID:      created.ID,
		Email:              created.Email,
		Name:               created.Name,
		ExperienceTitle:    created.ExperienceTitle,
		ExperienceCategory: created.ExperienceCategory,
		AppliedAt:          created.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"id":                    created.ID,
		"email":                 created.Email,
		"name":                  created.Name,
		"phone":                 nullStr(created.Phone),
		"kakaoId":               nullStr(created.KakaoID),
		"experienceTitle":       created.ExperienceTitle,
		"experienceDescription": created.ExperienceDescription,
		"experienceCategory":    created.ExperienceCategory,
		"pricePerHour":          nullInt(created.PricePerHour),
		"status":                created.Status,
		"createdAt":             created.CreatedAt,
	})
}
