package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nylose/sportcenter/internal/membership"
	"github.com/nylose/sportcenter/internal/middleware"
	"github.com/nylose/sportcenter/internal/repository"
)

// ListMembers returns every member account together with its latest active
// term, so the dashboard can show who is paid up.
func (h *AdminHandler) ListMembers(c echo.Context) error {
	ctx := c.Request().Context()
	users, err := h.Users.ListByRole(ctx, "member")
	if err != nil {
		return h.internalError(c, err, "Failed to load members")
	}

	now := time.Now()
	out := make([]echo.Map, 0, len(users))
	for _, u := range users {
		entry := echo.Map{"user": sanitizeUser(u), "membership": nil}
		m, err := h.Memberships.LatestActiveByUser(ctx, u.ID)
		switch {
		case err == nil:
			entry["membership"] = membershipOut(m)
			entry["membership_active"] = membership.IsActive(m.EndDate, now)
			entry["days_remaining"] = membership.DaysRemaining(m.EndDate, now)
		case errors.Is(err, repository.ErrNotFound):
			entry["membership_active"] = false
			entry["days_remaining"] = 0
		default:
			return h.internalError(c, err, "Failed to load members")
		}
		out = append(out, entry)
	}
	return c.JSON(http.StatusOK, out)
}

// ListAdmins returns every admin account.
func (h *AdminHandler) ListAdmins(c echo.Context) error {
	users, err := h.Users.ListByRole(c.Request().Context(), "admin")
	if err != nil {
		return h.internalError(c, err, "Failed to load admins")
	}
	return c.JSON(http.StatusOK, usersOut(users))
}

// ListUsers returns every account regardless of role.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.ListAll(c.Request().Context())
	if err != nil {
		return h.internalError(c, err, "Failed to load users")
	}
	return c.JSON(http.StatusOK, usersOut(users))
}

func usersOut(users []repository.User) []userJSON {
	out := make([]userJSON, 0, len(users))
	for _, u := range users {
		out = append(out, sanitizeUser(u))
	}
	return out
}

type statusRequest struct {
	IsActive *bool `json:"is_active"`
}

// SetMemberStatus toggles a member account.
func (h *AdminHandler) SetMemberStatus(c echo.Context) error {
	return h.setStatus(c, "member")
}

// SetAdminStatus toggles an admin account. An admin cannot deactivate their
// own account, which keeps the last admin from locking everyone out.
func (h *AdminHandler) SetAdminStatus(c echo.Context) error {
	return h.setStatus(c, "admin")
}

// SetUserStatus toggles any account regardless of role.
func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	return h.setStatus(c, "")
}

func (h *AdminHandler) setStatus(c echo.Context, role string) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_active is required"})
	}

	if caller, ok := middleware.CurrentUser(c); ok && caller.ID == id && !*req.IsActive {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "You cannot deactivate your own account"})
	}

	ctx := c.Request().Context()
	if role == "" {
		err = h.Users.SetActive(ctx, id, *req.IsActive)
	} else {
		err = h.Users.SetActiveByRole(ctx, id, *req.IsActive, role)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return h.internalError(c, err, "Failed to update user status")
	}

	msg := "User activated successfully"
	if !*req.IsActive {
		msg = "User deactivated successfully"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}

// Statistics serves the dashboard counters, derived from the live tables on
// every request.
func (h *AdminHandler) Statistics(c echo.Context) error {
	stats, err := h.Stats.Dashboard(c.Request().Context())
	if err != nil {
		return h.internalError(c, err, "Failed to load statistics")
	}
	return c.JSON(http.StatusOK, stats)
}
