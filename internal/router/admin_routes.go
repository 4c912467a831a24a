package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nylose/sportcenter/internal/handler"
	"github.com/nylose/sportcenter/internal/middleware"
	"github.com/nylose/sportcenter/internal/repository"
)

// RegisterAdmin mounts the dashboard endpoints behind token auth plus the
// admin role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string, users *repository.UserRepo) {
	g := e.Group(
		"/api/admin",
		middleware.JWTAuth(jwtSecret, users),
		middleware.RequireRole("admin"),
	)

	g.GET("/sports", h.ListSports)
	g.POST("/sports", h.CreateSport)
	g.PUT("/sports/:id", h.UpdateSport)
	g.DELETE("/sports/:id", h.DeleteSport)

	g.GET("/schedules", h.ListSchedules)
	g.POST("/schedules", h.CreateSchedule)
	g.PUT("/schedules/:id", h.UpdateSchedule)
	g.DELETE("/schedules/:id", h.DeleteSchedule)

	g.GET("/social-media", h.ListSocialMedia)
	g.POST("/social-media", h.CreateSocialMedia)
	g.PUT("/social-media/:id", h.UpdateSocialMedia)
	g.DELETE("/social-media/:id", h.DeleteSocialMedia)

	g.GET("/contact-info", h.ListContactInfo)
	g.POST("/contact-info", h.CreateContactInfo)
	g.PUT("/contact-info/:id", h.UpdateContactInfo)
	g.DELETE("/contact-info/:id", h.DeleteContactInfo)

	g.GET("/members", h.ListMembers)
	g.GET("/admins", h.ListAdmins)
	g.GET("/users", h.ListUsers)
	g.PUT("/members/:id/status", h.SetMemberStatus)
	g.PUT("/admins/:id/status", h.SetAdminStatus)
	g.PUT("/users/:id/status", h.SetUserStatus)

	g.GET("/statistics", h.Statistics)
}
