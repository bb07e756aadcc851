package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewColumns = []string{"id", "experience_id", "user_id", "rating", "comment", "created_at"}

func TestReviewRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO reviews").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT id,experience_id,user_id,rating,comment,created_at FROM reviews WHERE id=").
		WillReturnRows(sqlmock.NewRows(reviewColumns).
			AddRow(3, 1, 2, 5, "great time", time.Now()))

	repo := NewReviewRepo(db)
	rv, err := repo.Create(context.Background(), 1, 2, 5, "great time")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), rv.ID)
	assert.Equal(t, 5, rv.Rating)
	assert.Equal(t, "great time", rv.Comment.String)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepoCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The unique index fires when two requests raced past the pre-check.
	mock.ExpectExec("INSERT INTO reviews").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '1-2' for key 'reviews.uq_reviews_experience_user'"))

	repo := NewReviewRepo(db)
	_, err = repo.Create(context.Background(), 1, 2, 4, "")
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestReviewRepoExistsForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM reviews WHERE experience_id=").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM reviews WHERE experience_id=").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	repo := NewReviewRepo(db)
	exists, err := repo.ExistsForUser(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForUser(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.False(t, exists)
}
