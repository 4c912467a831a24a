package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nylose/sportcenter/internal/handler"
	"github.com/nylose/sportcenter/internal/middleware"
	"github.com/nylose/sportcenter/internal/repository"
)

// RegisterMember mounts the member area. Admins pass the role check too so
// support staff can inspect the member views they get asked about.
func RegisterMember(e *echo.Echo, h *handler.MemberHandler, auth *handler.AuthHandler, jwtSecret string, users *repository.UserRepo) {
	g := e.Group(
		"/api/member",
		middleware.JWTAuth(jwtSecret, users),
		middleware.RequireRole("member", "admin"),
	)
	g.GET("/profile", h.Profile)
	g.PUT("/profile", auth.UpdateProfile)
	g.POST("/membership/renew", h.Renew)
	g.GET("/membership/status", h.Status)
	g.GET("/payments", h.PaymentHistory)
}
