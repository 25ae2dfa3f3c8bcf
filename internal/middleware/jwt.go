package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"errors"   // sentinel error comparisons against repository errors
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/ecotrack/waste-collection-api/internal/repository"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token,
// resolves its subject against the users table and injects the user's id
// and role into the request context. The provided secret must match the one
// used when issuing tokens. Resolving the subject means a token outlives
// neither its user nor the user's role: a deleted account is rejected with
// 401 and a role change takes effect on the next request, because the
// effective role comes from the stored row, not from the token claim.
// Handlers access the authenticated identity via `c.Get("user_id")` and
// `c.Get("role")`.
func JWTAuth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Read the Authorization header. A valid header starts with
			// "Bearer " followed by the JWT. If it doesn't, respond with 401
			// Unauthorized indicating that authentication is required.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse the token using the HS256 signing method and our secret.
			// The callback provided to jwt.Parse supplies the signing key and
			// ensures the algorithm matches what we expect; expired tokens
			// fail validation inside Parse.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// The subject must still exist. A signature check alone would
			// keep honoring tokens for rows that are long gone.
			u, err := users.GetByID(c.Request().Context(), sub)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
			}

			// Store the stored identity in the context. Handlers and
			// downstream middleware (RequireRole) read these values via
			// c.Get().
			c.Set("user_id", u.ID)
			c.Set("role", u.Role)
			return next(c)
		}
	}
}
