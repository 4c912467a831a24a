package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nylose/sportcenter/internal/repository"
	"github.com/nylose/sportcenter/internal/validate"
)

type scheduleRequest struct {
	SportID         int64  `json:"sport_id"`
	DayOfWeek       string `json:"day_of_week"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	AgeGroup        string `json:"age_group"`
	MaxParticipants int    `json:"max_participants"`
	IsActive        *bool  `json:"is_active"`
}

func (r scheduleRequest) validate() []string {
	details := validate.ValidateSchedule(r.DayOfWeek, r.StartTime, r.EndTime)
	if r.SportID == 0 {
		details = append(details, "Sport is required")
	}
	if r.MaxParticipants < 0 {
		details = append(details, "Max participants cannot be negative")
	}
	return details
}

// participants returns the session capacity, falling back to 20 when the
// field was omitted (or sent as zero).
func (r scheduleRequest) participants() int {
	if r.MaxParticipants == 0 {
		return 20
	}
	return r.MaxParticipants
}

// ListSchedules returns every session, inactive ones included, in week
// order.
func (h *AdminHandler) ListSchedules(c echo.Context) error {
	entries, err := h.Schedules.ListAll(c.Request().Context())
	if err != nil {
		return h.internalError(c, err, "Failed to load schedule")
	}
	out := make([]echo.Map, 0, len(entries))
	for _, e := range entries {
		out = append(out, echo.Map{
			"id":               e.ID,
			"sport_id":         e.SportID,
			"sport_name":       e.SportName,
			"day_of_week":      e.DayOfWeek,
			"start_time":       e.StartTime,
			"end_time":         e.EndTime,
			"age_group":        e.AgeGroup,
			"max_participants": e.MaxParticipants,
			"is_active":        e.IsActive,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// CreateSchedule adds a session to an existing active sport.
func (h *AdminHandler) CreateSchedule(c echo.Context) error {
	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if details := req.validate(); len(details) > 0 {
		return validationFailed(c, details)
	}

	ctx := c.Request().Context()
	if _, err := h.Sports.GetActiveByID(ctx, req.SportID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Sport not found or inactive"})
		}
		return h.internalError(c, err, "Failed to create schedule")
	}

	id, err := h.Schedules.Create(ctx, req.SportID, req.DayOfWeek, req.StartTime, req.EndTime,
		req.AgeGroup, req.participants())
	if err != nil {
		return h.internalError(c, err, "Failed to create schedule")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Schedule created successfully", "id": id})
}

// UpdateSchedule replaces a session's fields.
func (h *AdminHandler) UpdateSchedule(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if details := req.validate(); len(details) > 0 {
		return validationFailed(c, details)
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	ctx := c.Request().Context()
	if _, err := h.Sports.GetActiveByID(ctx, req.SportID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Sport not found or inactive"})
		}
		return h.internalError(c, err, "Failed to update schedule")
	}

	err = h.Schedules.Update(ctx, id, req.SportID, req.DayOfWeek, req.StartTime, req.EndTime,
		req.AgeGroup, req.participants(), isActive)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Schedule not found"})
		}
		return h.internalError(c, err, "Failed to update schedule")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Schedule updated successfully"})
}

// DeleteSchedule removes a session outright.
func (h *AdminHandler) DeleteSchedule(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	err = h.Schedules.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Schedule not found"})
		}
		return h.internalError(c, err, "Failed to delete schedule")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Schedule deleted successfully"})
}
