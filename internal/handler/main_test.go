package handler

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// sqlmockDB bundles the mocked connection with its expectation handle.
type sqlmockDB struct {
	DB   *sql.DB
	Mock sqlmock.Sqlmock
}

func newSQLMock(t *testing.T) *sqlmockDB {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return &sqlmockDB{DB: db, Mock: mock}
}

func (m *sqlmockDB) Close() { _ = m.DB.Close() }
