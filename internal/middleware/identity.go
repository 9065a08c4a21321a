package middleware

import (
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pawtrail/pawtrail/backend/internal/models"
)

// DevFallbackUserID is the placeholder identity used outside production
// when a request carries no resolvable identity.
const DevFallbackUserID = "dev-fallback-user"

// Identity resolves the caller identity and stores it under "userID".
// Resolution order: verified Firebase ID token, locally-signed JWT,
// X-User-Id header, then the dev fallback when not in production.
// The middleware never rejects a request; handlers that need an identity
// check for an empty value themselves.
func Identity(authClient *auth.Client, jwtSecret, env string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if uid := resolveUserID(c, authClient, jwtSecret); uid != "" {
				c.Set("userID", uid)
			} else if env != "production" {
				c.Set("userID", DevFallbackUserID)
			}
			return next(c)
		}
	}
}

func resolveUserID(c echo.Context, authClient *auth.Client, jwtSecret string) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			token := parts[1]
			if authClient != nil {
				if verified, err := authClient.VerifyIDToken(c.Request().Context(), token); err == nil {
					return verified.UID
				}
			}
			if uid := parseLocalToken(token, jwtSecret); uid != "" {
				return uid
			}
		}
	}

	return c.Request().Header.Get("X-User-Id")
}

// parseLocalToken validates a JWT signed with the server's own HMAC secret
func parseLocalToken(tokenString, secret string) string {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	return claims.UserID
}
