package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"letters and digits", "abc12345", true},
		{"digits first", "1234abcd", true},
		{"mixed case", "Abc12345", true},
		{"long", "abcdefgh1234567890", true},
		{"too short", "abc1234", false},
		{"letters only", "abcdefgh", false},
		{"digits only", "12345678", false},
		{"special characters", "abc1234!", false},
		{"whitespace", "abc 1234", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidPassword(tc.password))
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("abc12345", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "abc12345", hash)

	assert.True(t, VerifyPassword(hash, "abc12345"))
	assert.False(t, VerifyPassword(hash, "abc12346"))
	assert.False(t, VerifyPassword("not-a-hash", "abc12345"))
}
