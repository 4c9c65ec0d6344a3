package middleware // reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the token's subject and role claims into the
// request context.  The provided secret must match the one used when
// issuing tokens.  Handlers behind this middleware read the
// authenticated user via c.Get("user_id") and c.Get("role").
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			if err := authenticate(c, secret); err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}
			return next(c)
		}
	}
}

// JWTOptional behaves like JWTAuth when a bearer token is presented
// and passes the request through as a guest when it is not.  Used on
// routes whose response depends on who is asking but which guests may
// also call, like the schedule grid.  A presented but invalid token is
// still rejected.
func JWTOptional(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return next(c)
			}
			if err := authenticate(c, secret); err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}
			return next(c)
		}
	}
}

// authenticate parses the bearer token on the request and stores the
// subject and role claims in the context.
func authenticate(c echo.Context, secret string) error {
	raw := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")

	// Parse with HS256 and our secret; reject any token signed with a
	// different method.
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return errors.New("invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid claims")
	}

	// Store subject (user ID) and role for handlers and downstream
	// middleware; type assertions are left to the consumers.
	c.Set("user_id", claims["sub"])
	c.Set("role", claims["role"])
	return nil
}
