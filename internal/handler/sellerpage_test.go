package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeseller/timeseller-api/internal/repository"
)

func newSellerPageHandler(db *sqlmockDB) *SellerPageHandler {
	return NewSellerPageHandler(
		repository.NewExperienceRepo(db.DB),
		repository.NewReservationRepo(db.DB),
		repository.NewReviewRepo(db.DB),
	)
}

func TestMyExperiencesNestsReservationsAndReviews(t *testing.T) {
	db := newSQLMock(t)
	defer db.Close()

	now := time.Now()
	db.Mock.ExpectQuery("FROM experiences WHERE seller_id=").
		WillReturnRows(sqlmock.NewRows(experienceColumns).
			AddRow(1, "Guitar lesson", nil, "music", 30000, 7, now))
	db.Mock.ExpectQuery("SELECT id,experience_id,user_id,created_at FROM reservations WHERE experience_id IN").
		WillReturnRows(sqlmock.NewRows([]string{"id", "experience_id", "user_id", "created_at"}).
			AddRow(5, 1, 2, now).
			AddRow(6, 1, 3, now))
	db.Mock.ExpectQuery("SELECT id,experience_id,user_id,rating,comment,created_at FROM reviews WHERE experience_id IN").
		WillReturnRows(sqlmock.NewRows([]string{"id", "experience_id", "user_id", "rating", "comment", "created_at"}).
			AddRow(9, 1, 2, 5, "nice", now))

	h := newSellerPageHandler(db)
	c, rec := newJSONContext(t, http.MethodGet, "/sellerpage/my-experiences", "")
	c.Set("user_id", uint64(7))

	require.NoError(t, h.MyExperiences(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		ID           uint64            `json:"id"`
		Reservations []json.RawMessage `json:"reservations"`
		Reviews      []json.RawMessage `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Len(t, resp[0].Reservations, 2)
	assert.Len(t, resp[0].Reviews, 1)
}

func TestMyReservationsNestsExperienceAndBuyer(t *testing.T) {
	db := newSQLMock(t)
	defer db.Close()

	now := time.Now()
	db.Mock.ExpectQuery("WHERE e.seller_id=").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "experience_id", "user_id", "created_at",
			"e_id", "title", "description", "category", "price_per_hour", "seller_id", "e_created_at",
			"u_id", "nickname", "name",
		}).AddRow(5, 1, 2, now, 1, "Guitar lesson", nil, "music", 30000, 7, now, 2, "buyer1", "Bob"))

	h := newSellerPageHandler(db)
	c, rec := newJSONContext(t, http.MethodGet, "/sellerpage/my-reservations", "")
	c.Set("user_id", uint64(7))

	require.NoError(t, h.MyReservations(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		ID         uint64 `json:"id"`
		Experience *struct {
			Title string `json:"title"`
		} `json:"experience"`
		User *struct {
			Nickname string  `json:"nickname"`
			Name     *string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	require.NotNil(t, resp[0].Experience)
	assert.Equal(t, "Guitar lesson", resp[0].Experience.Title)
	require.NotNil(t, resp[0].User)
	assert.Equal(t, "buyer1", resp[0].User.Nickname)
	require.NotNil(t, resp[0].User.Name)
	assert.Equal(t, "Bob", *resp[0].User.Name)
}
