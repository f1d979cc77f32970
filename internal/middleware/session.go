// Package middleware contains reusable HTTP middleware: session token
// validation and Redis-backed rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gastroflow/gastroflow/internal/utils"
)

// IdentityIDKey is the echo context key under which the authenticated
// identity id is stored.
const IdentityIDKey = "identity_id"

// SessionAuth validates a Bearer session token and stores the identity id
// in the request context.  Wrap it around routes that require a session.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			id, err := utils.ParseSessionToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(IdentityIDKey, id)
			return next(c)
		}
	}
}

// OptionalSession parses a Bearer token when one is present but never
// rejects the request.  Guest booking uses this: an authenticated booking
// gets linked to its owner, an anonymous one does not.
func OptionalSession(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				if id, err := utils.ParseSessionToken(secret, strings.TrimPrefix(auth, "Bearer ")); err == nil {
					c.Set(IdentityIDKey, id)
				}
			}
			return next(c)
		}
	}
}

// IdentityID returns the authenticated identity id from the context, or
// empty when the request carries no valid session.
func IdentityID(c echo.Context) string {
	if v, ok := c.Get(IdentityIDKey).(string); ok {
		return v
	}
	return ""
}
