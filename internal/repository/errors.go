// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios and map them onto the
// right HTTP status. Duplicate-key errors deserve a note: the handlers run
// friendly existence pre-checks, but two concurrent requests can both pass a
// pre-check before either insert commits. The unique indexes created by the
// migrations are therefore the source of truth, and the insert helpers below
// translate a MySQL duplicate-key violation (error 1062) into the same
// sentinel the pre-check would have produced.
package repository

import (
	"errors"
	"strings"
)

// ErrEmailExists is returned when a registration collides with an existing
// email address. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrNicknameExists is returned when a registration collides with an
// existing nickname. Handlers translate this into HTTP 409.
var ErrNicknameExists = errors.New("nickname already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrExperienceNotFound is returned when an experience lookup matches no
// row. Handlers translate this into HTTP 404.
var ErrExperienceNotFound = errors.New("experience not found")

// ErrDuplicateReview is returned when a second review is written for the
// same (experience, user) pair. Handlers translate this into HTTP 409.
var ErrDuplicateReview = errors.New("review already exists")

// isDupKey reports whether err is a MySQL duplicate-key violation on the
// named unique index. An empty key matches any 1062 error.
func isDupKey(err error, key string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return false
	}
	return key == "" || strings.Contains(msg, strings.ToLower(key))
}
