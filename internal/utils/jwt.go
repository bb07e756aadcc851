package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel error for failed verification
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// tokenTTL is the fixed lifetime of a user token.  There is no refresh
// mechanism and no revocation list; expiry is the only lifecycle control.
const tokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for any token that fails verification.  A
// malformed token, a bad signature and an expired token are deliberately
// indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

// UserToken represents a signed JWT along with its expiry.  The Token field
// contains the serialized JWT string that clients send back in the
// Authorization header on every authenticated call.
type UserToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewUserToken builds and signs an HS256 JWT for a user.  The payload carries
// only the user ID under the "userId" claim plus the standard exp/iat claims.
// Role information is intentionally absent: authorization is always re-derived
// from current storage state, never from token claims.
func NewUserToken(secret string, userID uint64) (UserToken, error) {
	now := time.Now().UTC()
	exp := now.Add(tokenTTL)
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    exp.Unix(),
		"iat":    now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return UserToken{}, err
	}
	return UserToken{Token: signed, Exp: exp}, nil
}

// ParseUserToken verifies a serialized token and extracts the user ID.  Every
// failure mode collapses into ErrInvalidToken.
func ParseUserToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything other than HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// Numeric claims decode as float64 when the token came over the wire.
	switch v := claims["userId"].(type) {
	case float64:
		if v > 0 {
			return uint64(v), nil
		}
	case uint64:
		if v > 0 {
			return v, nil
		}
	}
	return 0, ErrInvalidToken
}
