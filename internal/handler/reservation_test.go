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

var experienceColumns = []string{"id", "title", "description", "category", "price_per_hour", "seller_id", "created_at"}

func newReservationHandler(db *sqlmockDB) *ReservationHandler {
	return NewReservationHandler(repository.NewExperienceRepo(db.DB), repository.NewReservationRepo(db.DB))
}

func TestCreateReservationExperienceMissing(t *testing.T) {
	db := newSQLMock(t)
	defer db.Close()

	db.Mock.ExpectQuery("SELECT id,title,description,category,price_per_hour,seller_id,created_at FROM experiences WHERE id=").
		WillReturnRows(sqlmock.NewRows(experienceColumns))

	h := newReservationHandler(db)
	c, rec := newJSONContext(t, http.MethodPost, "/reservation", `{"experienceId":99}`)
	c.Set("user_id", uint64(2))

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "experience not found", errorBody(t, rec))
}

func TestCreateReservationSuccess(t *testing.T) {
	db := newSQLMock(t)
	defer db.Close()

	now := time.Now()
	db.Mock.ExpectQuery("SELECT id,title,description,category,price_per_hour,seller_id,created_at FROM experiences WHERE id=").
		WillReturnRows(sqlmock.NewRows(experienceColumns).
			AddRow(1, "Guitar lesson", "one hour", "music", 30000, 9, now))
	db.Mock.ExpectExec("INSERT INTO reservations").
		WillReturnResult(sqlmock.NewResult(5, 1))
	db.Mock.ExpectQuery("SELECT id,experience_id,user_id,created_at FROM reservations WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "experience_id", "user_id", "created_at"}).
			AddRow(5, 1, 2, now))

	h := newReservationHandler(db)
	c, rec := newJSONContext(t, http.MethodPost, "/reservation", `{"experienceId":1}`)
	c.Set("user_id", uint64(2))

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID           uint64 `json:"id"`
		ExperienceID uint64 `json:"experienceId"`
		UserID       uint64 `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(5), resp.ID)
	assert.Equal(t, uint64(1), resp.ExperienceID)
	assert.Equal(t, uint64(2), resp.UserID)
	assert.NoError(t, db.Mock.ExpectationsWereMet())
}

func TestMyReservationsNestsExperience(t *testing.T) {
	db := newSQLMock(t)
	defer db.Close()

	now := time.Now()
	db.Mock.ExpectQuery("FROM reservations rv JOIN experiences e ON").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "experience_id", "user_id", "created_at",
			"e_id", "title", "description", "category", "price_per_hour", "seller_id", "e_created_at",
		}).AddRow(5, 1, 2, now, 1, "Guitar lesson", nil, "music", nil, 9, now))

	h := newReservationHandler(db)
	c, rec := newJSONContext(t, http.MethodGet, "/reservation/my", "")
	c.Set("user_id", uint64(2))

	require.NoError(t, h.My(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		ID         uint64 `json:"id"`
		Experience *struct {
			ID    uint64 `json:"id"`
			Title string `json:"title"`
		} `json:"experience"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	require.NotNil(t, resp[0].Experience)
	assert.Equal(t, "Guitar lesson", resp[0].Experience.Title)
}
