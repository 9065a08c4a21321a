package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pawtrail/pawtrail/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func resolveThrough(t *testing.T, env string, decorate func(*http.Request)) string {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resolved string
	handler := Identity(nil, testSecret, env)(func(c echo.Context) error {
		if uid, ok := c.Get("userID").(string); ok {
			resolved = uid
		}
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return resolved
}

func signLocalToken(t *testing.T, userID, secret string) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestIdentityLocalToken(t *testing.T) {
	token := signLocalToken(t, "user-42", testSecret)
	uid := resolveThrough(t, "production", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, "user-42", uid)
}

func TestIdentityRejectsBadSignature(t *testing.T) {
	token := signLocalToken(t, "user-42", "wrong-secret")
	uid := resolveThrough(t, "production", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Empty(t, uid)
}

func TestIdentityHeaderFallback(t *testing.T) {
	uid := resolveThrough(t, "production", func(req *http.Request) {
		req.Header.Set("X-User-Id", "header-user")
	})
	assert.Equal(t, "header-user", uid)
}

func TestIdentityDevFallback(t *testing.T) {
	uid := resolveThrough(t, "development", nil)
	assert.Equal(t, DevFallbackUserID, uid)
}

func TestIdentityNoFallbackInProduction(t *testing.T) {
	uid := resolveThrough(t, "production", nil)
	assert.Empty(t, uid)
}
