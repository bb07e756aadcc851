package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserTokenRoundTrip(t *testing.T) {
	tok, err := NewUserToken("test-secret", 42)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), tok.Exp, time.Minute)

	uid, err := ParseUserToken("test-secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestParseUserTokenWrongSecret(t *testing.T) {
	tok, err := NewUserToken("test-secret", 42)
	require.NoError(t, err)

	_, err = ParseUserToken("other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseUserTokenGarbage(t *testing.T) {
	_, err := ParseUserToken("test-secret", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseUserToken("test-secret", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
