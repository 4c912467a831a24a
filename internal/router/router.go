// Package router mounts the handler groups onto the echo instance. Routes
// are grouped by audience: /api/auth and /api/public are open, /api/member
// requires a valid token, /api/admin additionally requires the admin role.
package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nylose/sportcenter/internal/handler"
)

// ErrorHandler returns the centralized echo error handler: 404 for unknown
// routes, the embedded message for echo.HTTPError values and a generic 500
// for everything else. Development builds include the error text.
func ErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := "Route not found"
			if he.Code != http.StatusNotFound {
				if s, ok := he.Message.(string); ok {
					msg = s
				} else {
					msg = http.StatusText(he.Code)
				}
			}
			_ = c.JSON(he.Code, echo.Map{"error": msg})
			return
		}

		body := echo.Map{"error": "Internal server error"}
		if !production {
			body["detail"] = err.Error()
		}
		_ = c.JSON(http.StatusInternalServerError, body)
	}
}

// RegisterCore mounts the health probe, the Prometheus scrape endpoint and
// the uploaded-image static route.
func RegisterCore(e *echo.Echo, uploadDir string) {
	e.GET("/api/health", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static("/uploads", uploadDir)
}

// RegisterPublic mounts the unauthenticated content endpoints.
func RegisterPublic(e *echo.Echo, h *handler.PublicHandler) {
	g := e.Group("/api/public")
	g.GET("/sports", h.ListSports)
	g.GET("/schedule", h.Schedule)
	g.GET("/schedule/:sport", h.ScheduleBySport)
	g.GET("/pricing", h.Pricing)
	g.GET("/social-media", h.SocialMedia)
	g.GET("/contact-info", h.ContactInfo)
	g.GET("/status", h.Status)
}
