package middleware

// identity.go holds the caller-identification helper shared across
// middleware files.  The rate limiter sits in front of JWTAuth in the
// chain, so it cannot rely on the "user_id" context key having been
// set yet and falls back to reading the bearer token directly.

import (
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// callerID returns the id of the authenticated user, or "" when the
// request is anonymous.  It prefers the "user_id" context key when a
// prior middleware already validated the token and otherwise parses
// the Authorization header itself.  Invalid tokens count as anonymous
// here; JWTAuth rejects them later.
func callerID(c echo.Context, secret string) string {
	if uid := claimString(c.Get("user_id")); uid != "" {
		return uid
	}

	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return ""
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	return claimString(claims["sub"])
}

// claimString renders a subject claim as a string.  JWT claims decode
// numbers as float64, so that is the common case.
func claimString(v interface{}) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case string:
		return t
	default:
		return ""
	}
}
