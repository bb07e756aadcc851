package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeseller/timeseller-api/internal/utils"
)

const testSecret = "test-secret"

func probe(c echo.Context) error {
	uid, _ := c.Get("user_id").(uint64)
	return c.JSON(http.StatusOK, echo.Map{"userId": uid})
}

func doRequest(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/protected", probe, JWTAuth(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec := doRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
}

func TestJWTAuthWrongScheme(t *testing.T) {
	rec := doRequest(t, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
}

func TestJWTAuthBadToken(t *testing.T) {
	rec := doRequest(t, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewUserToken("another-secret", 7)
	require.NoError(t, err)
	rec := doRequest(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestJWTAuthValidTokenInjectsUserID(t *testing.T) {
	tok, err := utils.NewUserToken(testSecret, 7)
	require.NoError(t, err)
	rec := doRequest(t, "Bearer "+tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":7`)
}
