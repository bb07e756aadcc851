package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{"id", "email", "password_hash", "nickname", "name", "is_seller", "created_at", "updated_at"}

func TestUserRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := NewUserRepo(db)
	id, err := repo.Create(context.Background(), "A@x.com", "abc12345", "nick1", "", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'a@x.com' for key 'users.uq_users_email'"))

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "a@x.com", "abc12345", "nick1", "", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserRepoCreateDuplicateNickname(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'nick1' for key 'users.uq_users_nickname'"))

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "b@x.com", "abc12345", "nick1", "", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrNicknameExists)
}

func TestUserRepoGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id,email,password_hash,nickname,name,is_seller,created_at,updated_at FROM users WHERE email=").
		WillReturnRows(sqlmock.NewRows(userColumns))

	repo := NewUserRepo(db)
	_, err = repo.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepoGetByIDNormalizes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id,email,password_hash,nickname,name,is_seller,created_at,updated_at FROM users WHERE id=").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(7, "a@x.com", "hash", "nick1", nil, true, now, now))

	repo := NewUserRepo(db)
	u, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u.ID)
	assert.Equal(t, "a@x.com", u.Email)
	assert.True(t, u.IsSeller)
	assert.False(t, u.Name.Valid)
}

func TestUserRepoNicknameExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM users WHERE nickname=").
		WithArgs("nick1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM users WHERE nickname=").
		WithArgs("free").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	repo := NewUserRepo(db)
	taken, err := repo.NicknameExists(context.Background(), "nick1")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.NicknameExists(context.Background(), "free")
	require.NoError(t, err)
	assert.False(t, taken)
}
