package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nylose/sportcenter/internal/handler"
	"github.com/nylose/sportcenter/internal/middleware"
	"github.com/nylose/sportcenter/internal/repository"
)

// RegisterAuth mounts registration and login openly, and the caller's own
// profile and payment endpoints behind token auth. Payment deliberately
// lives here rather than under /api/member: a freshly registered member
// must be able to pay the first term with the token registration returned.
func RegisterAuth(e *echo.Echo, h *handler.AuthHandler, jwtSecret string, users *repository.UserRepo) {
	g := e.Group("/api/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)

	authed := g.Group("", middleware.JWTAuth(jwtSecret, users))
	authed.GET("/profile", h.GetProfile)
	authed.PUT("/profile", h.UpdateProfile)
	authed.POST("/payment", h.Pay)
}
