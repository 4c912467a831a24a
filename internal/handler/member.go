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

// MemberHandler serves the logged-in member area: full profile, renewal,
// membership status and payment history.
type MemberHandler struct {
	Base
	Users       *repository.UserRepo
	Memberships *repository.MembershipRepo
	Payments    *repository.PaymentRepo
}

// Profile returns the member's account, latest active term and full payment
// history in one response.
func (h *MemberHandler) Profile(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
	}
	ctx := c.Request().Context()

	out := echo.Map{"user": sanitizeUser(u)}
	m, err := h.Memberships.LatestActiveByUser(ctx, u.ID)
	switch {
	case err == nil:
		out["membership"] = membershipOut(m)
	case errors.Is(err, repository.ErrNotFound):
		out["membership"] = nil
	default:
		return h.internalError(c, err, "Failed to load profile")
	}

	payments, err := h.Payments.ListByUser(ctx, u.ID)
	if err != nil {
		return h.internalError(c, err, "Failed to load profile")
	}
	out["payments"] = paymentsOut(payments)
	return c.JSON(http.StatusOK, out)
}

// Renew opens the next three-month term. If the current term is still
// running the new one starts the day it expires, so renewing early never
// costs covered days; otherwise it starts today.
func (h *MemberHandler) Renew(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
	}
	ctx := c.Request().Context()
	now := time.Now()

	var start time.Time
	current, err := h.Memberships.LatestActiveByUser(ctx, u.ID)
	switch {
	case err == nil:
		// Only a still-running unpaid term blocks renewal; once it has
		// lapsed the member gets a fresh term starting today.
		if current.PaymentStatus != "paid" && membership.IsActive(current.EndDate, now) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Current membership is unpaid; pay it instead of renewing",
			})
		}
		start = membership.RenewalStart(current.EndDate, true, now)
	case errors.Is(err, repository.ErrNotFound):
		start = membership.RenewalStart(time.Time{}, false, now)
	default:
		return h.internalError(c, err, "Renewal failed")
	}

	end := membership.TermEnd(start)
	id, err := h.Memberships.Create(ctx, u.ID, start, end, membership.TermPrice)
	if err != nil {
		return h.internalError(c, err, "Renewal failed")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Membership renewal created; payment required",
		"membership": membershipJSON{
			ID:            id,
			StartDate:     start.Format("2006-01-02"),
			EndDate:       end.Format("2006-01-02"),
			Status:        "active",
			PaymentStatus: "pending",
			AmountPaid:    membership.TermPrice,
		},
	})
}

// Status answers the dashboard widget: is the membership live and for how
// many more days.
func (h *MemberHandler) Status(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
	}
	now := time.Now()

	m, err := h.Memberships.LatestActiveByUser(c.Request().Context(), u.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, echo.Map{
				"status":         "no_active_membership",
				"has_membership": false,
				"is_active":      false,
				"days_remaining": 0,
			})
		}
		return h.internalError(c, err, "Failed to load membership status")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"has_membership": true,
		"is_active":      membership.IsActive(m.EndDate, now),
		"days_remaining": membership.DaysRemaining(m.EndDate, now),
		"payment_status": m.PaymentStatus,
		"membership":     membershipOut(m),
	})
}

// PaymentHistory lists the member's payments, newest first, each with the
// term it covered.
func (h *MemberHandler) PaymentHistory(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
	}
	payments, err := h.Payments.ListByUser(c.Request().Context(), u.ID)
	if err != nil {
		return h.internalError(c, err, "Failed to load payments")
	}
	return c.JSON(http.StatusOK, paymentsOut(payments))
}

func paymentsOut(payments []repository.PaymentWithTerm) []echo.Map {
	out := make([]echo.Map, 0, len(payments))
	for _, p := range payments {
		out = append(out, echo.Map{
			"id":                p.ID,
			"membership_id":     p.MembershipID,
			"amount":            p.Amount,
			"payment_method":    p.PaymentMethod,
			"transaction_id":    p.TransactionID,
			"status":            p.Status,
			"payment_date":      p.PaymentDate.Format("2006-01-02 15:04:05"),
			"term_start":        p.StartDate.Format("2006-01-02"),
			"term_end":          p.EndDate.Format("2006-01-02"),
			"membership_status": p.MembershipStatus,
		})
	}
	return out
}
