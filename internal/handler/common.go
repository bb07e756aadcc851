package handler // handler defines http handlers

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/timeseller/timeseller-api/internal/repository"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("missing user id")
}

// nullStr converts a nullable column into a *string for JSON output, so a
// NULL surfaces as JSON null rather than an empty string.
func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// nullInt converts a nullable integer column into a *int64 for JSON output.
func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

// ----- shared response shapes -----

type userJSON struct {
	ID       uint64  `json:"id"`
	Email    string  `json:"email"`
	Nickname string  `json:"nickname"`
	Name     *string `json:"name"`
	IsSeller bool    `json:"isSeller"`
}

func toUserJSON(u repository.User) userJSON {
	return userJSON{
		ID:       u.ID,
		Email:    u.Email,
		Nickname: u.Nickname,
		Name:     nullStr(u.Name),
		IsSeller: u.IsSeller,
	}
}

type sellerJSON struct {
	ID       uint64 `json:"id"`
	Nickname string `json:"nickname"`
}

type experienceJSON struct {
	ID           uint64      `json:"id"`
	Title        string      `json:"title"`
	Description  *string     `json:"description"`
	Category     *string     `json:"category"`
	PricePerHour *int64      `json:"pricePerHour"`
	SellerID     uint64      `json:"sellerId"`
	CreatedAt    time.Time   `json:"createdAt"`
	Seller       *sellerJSON `json:"seller,omitempty"`
}

func toExperienceJSON(e repository.Experience) experienceJSON {
	return experienceJSON{
		ID:           e.ID,
		Title:        e.Title,
		Description:  nullStr(e.Description),
		Category:     nullStr(e.Category),
		PricePerHour: nullInt(e.PricePerHour),
		SellerID:     e.SellerID,
		CreatedAt:    e.CreatedAt,
	}
}

type reviewJSON struct {
	ID           uint64    `json:"id"`
	ExperienceID uint64    `json:"experienceId"`
	UserID       uint64    `json:"userId"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toReviewJSON(r repository.Review) reviewJSON {
	return reviewJSON{
		ID:           r.ID,
		ExperienceID: r.ExperienceID,
		UserID:       r.UserID,
		Rating:       r.Rating,
		Comment:      nullStr(r.Comment),
		CreatedAt:    r.CreatedAt,
	}
}

type reservationJSON struct {
	ID           uint64          `json:"id"`
	ExperienceID uint64          `json:"experienceId"`
	UserID       uint64          `json:"userId"`
	CreatedAt    time.Time       `json:"createdAt"`
	Experience   *experienceJSON `json:"experience,omitempty"`
	User         *buyerJSON      `json:"user,omitempty"`
}

func toReservationJSON(r repository.Reservation) reservationJSON {
	return reservationJSON{
		ID:           r.ID,
		ExperienceID: r.ExperienceID,
		UserID:       r.UserID,
		CreatedAt:    r.CreatedAt,
	}
}

type buyerJSON struct {
	ID       uint64  `json:"id"`
	Nickname string  `json:"nickname"`
	Name     *string `json:"name"`
}
