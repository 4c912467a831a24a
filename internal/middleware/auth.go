package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/nylose/sportcenter/internal/repository"
)

// userContextKey is where JWTAuth stores the resolved account.
const userContextKey = "user"

// JWTAuth returns an Echo middleware that validates a Bearer access token,
// loads the account behind it and stores the *repository.User in the
// request context. Requests fail with 401 when the token is missing,
// invalid or expired, and also when the account no longer exists or has
// been deactivated — a revoked account must lose access before its token
// expires. Downstream handlers read the user via CurrentUser.
func JWTAuth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access token required"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Only HMAC-signed tokens are ever issued; reject anything else.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}
			sub, ok := claims["sub"].(float64) // JWT numbers decode as float64
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}

			u, err := users.GetByID(c.Request().Context(), int64(sub))
			if err != nil || !u.IsActive {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or inactive user"})
			}
			c.Set(userContextKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the account resolved by JWTAuth. The bool is false on
// routes that never passed through the middleware.
func CurrentUser(c echo.Context) (repository.User, bool) {
	u, ok := c.Get(userContextKey).(repository.User)
	return u, ok
}
