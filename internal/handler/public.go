package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nylose/sportcenter/internal/membership"
	"github.com/nylose/sportcenter/internal/repository"
)

// PublicHandler serves the unauthenticated site content: sports, the weekly
// schedule, pricing, footer links and the status probe.
type PublicHandler struct {
	Base
	DB        *sql.DB
	Sports    *repository.SportRepo
	Schedules *repository.ScheduleRepo
	Social    *repository.SocialMediaRepo
	Contact   *repository.ContactInfoRepo
}

type sportJSON struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	AgeGroups   []string `json:"age_groups"`
	ImagePath   *string  `json:"image_path"`
}

func sportOut(s repository.Sport) sportJSON {
	return sportJSON{
		ID:          s.ID,
		Name:        s.Name,
		Description: nullStr(s.Description),
		AgeGroups:   s.AgeGroupList(),
		ImagePath:   nullStr(s.ImagePath),
	}
}

type scheduleJSON struct {
	ID               int64   `json:"id"`
	SportID          int64   `json:"sport_id"`
	SportName        string  `json:"sport_name"`
	SportDescription *string `json:"sport_description,omitempty"`
	DayOfWeek        string  `json:"day_of_week"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	AgeGroup         string  `json:"age_group"`
	MaxParticipants  int     `json:"max_participants"`
}

func scheduleOut(e repository.ScheduleEntry) scheduleJSON {
	return scheduleJSON{
		ID:               e.ID,
		SportID:          e.SportID,
		SportName:        e.SportName,
		SportDescription: nullStr(e.SportDescription),
		DayOfWeek:        e.DayOfWeek,
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		AgeGroup:         e.AgeGroup,
		MaxParticipants:  e.MaxParticipants,
	}
}

// ListSports returns all active sports ordered by name.
func (h *PublicHandler) ListSports(c echo.Context) error {
	sports, err := h.Sports.ListActive(c.Request().Context())
	if err != nil {
		return h.internalError(c, err, "Failed to load sports")
	}
	out := make([]sportJSON, 0, len(sports))
	for _, s := range sports {
		out = append(out, sportOut(s))
	}
	return c.JSON(http.StatusOK, out)
}

// Schedule returns every active session, week-ordered Måndag through Söndag
// and by start time within the day.
func (h *PublicHandler) Schedule(c echo.Context) error {
	entries, err := h.Schedules.ListActive(c.Request().Context())
	if err != nil {
		return h.internalError(c, err, "Failed to load schedule")
	}
	return c.JSON(http.StatusOK, schedulesOut(entries))
}

// ScheduleBySport filters the schedule by sport name, case-insensitively.
// An unknown name yields an empty list, not a 404.
func (h *PublicHandler) ScheduleBySport(c echo.Context) error {
	entries, err := h.Schedules.ListActiveBySport(c.Request().Context(), c.Param("sport"))
	if err != nil {
		return h.internalError(c, err, "Failed to load schedule")
	}
	return c.JSON(http.StatusOK, schedulesOut(entries))
}

func schedulesOut(entries []repository.ScheduleEntry) []scheduleJSON {
	out := make([]scheduleJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, scheduleOut(e))
	}
	return out
}

// Pricing publishes the club's single membership offer.
func (h *PublicHandler) Pricing(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"term_price":  membership.TermPrice,
		"currency":    "SEK",
		"term_length": fmt.Sprintf("%d months", membership.TermMonths),
		"description": "Medlemskap i Nylöse SportCenter, alla sporter ingår",
	})
}

// SocialMedia lists the active footer links in display order.
func (h *PublicHandler) SocialMedia(c echo.Context) error {
	links, err := h.Social.List(c.Request().Context(), true)
	if err != nil {
		return h.internalError(c, err, "Failed to load social media links")
	}
	out := make([]echo.Map, 0, len(links))
	for _, l := range links {
		out = append(out, echo.Map{
			"id":            l.ID,
			"platform":      l.Platform,
			"url":           l.URL,
			"icon_class":    l.IconClass,
			"display_order": l.DisplayOrder,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// ContactInfo lists the active contact entries in display order.
func (h *PublicHandler) ContactInfo(c echo.Context) error {
	entries, err := h.Contact.List(c.Request().Context(), true)
	if err != nil {
		return h.internalError(c, err, "Failed to load contact info")
	}
	out := make([]echo.Map, 0, len(entries))
	for _, e := range entries {
		out = append(out, echo.Map{
			"id":            e.ID,
			"type":          e.Type,
			"label":         e.Label,
			"value":         e.Value,
			"href":          nullStr(e.Href),
			"display_order": e.DisplayOrder,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Status reports API liveness and whether the database answers.
func (h *PublicHandler) Status(c echo.Context) error {
	dbState := "connected"
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		dbState = "disconnected"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "running",
		"database":  dbState,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
