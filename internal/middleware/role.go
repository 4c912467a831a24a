package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware that enforces that the authenticated
// user has one of the given roles. It assumes JWTAuth already resolved the
// account; a request with a missing or disallowed role is aborted with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok || !allowed[u.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Access denied"})
			}
			return next(c)
		}
	}
}
