// Package handler contains the HTTP handlers, grouped by audience: auth,
// public, member and admin. Handlers bind and validate input, call the
// repositories and translate sentinel errors into HTTP statuses.
package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nylose/sportcenter/internal/repository"
)

// Base carries the cross-cutting dependencies every handler group needs.
type Base struct {
	Log        *zap.Logger
	Production bool
}

// internalError logs an unexpected failure and returns a generic 500. In
// development the response also carries the underlying error text; in
// production it never does.
func (b Base) internalError(c echo.Context, err error, msg string) error {
	b.Log.Error(msg, zap.Error(err), zap.String("path", c.Request().URL.Path))
	if b.Production {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg, "detail": err.Error()})
}

// validationFailed returns the itemized 400 body shared by all validators.
func validationFailed(c echo.Context, details []string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation failed", "details": details})
}

// userJSON is the sanitized account representation; the password hash never
// leaves the repository layer.
type userJSON struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Phone          *string   `json:"phone"`
	Address        *string   `json:"address"`
	Personnummer   *string   `json:"personnummer"`
	ParentName     *string   `json:"parent_name,omitempty"`
	ParentLastname *string   `json:"parent_lastname,omitempty"`
	ParentPhone    *string   `json:"parent_phone,omitempty"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func sanitizeUser(u repository.User) userJSON {
	return userJSON{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          nullStr(u.Phone),
		Address:        nullStr(u.Address),
		Personnummer:   nullStr(u.Personnummer),
		ParentName:     nullStr(u.ParentName),
		ParentLastname: nullStr(u.ParentLastname),
		ParentPhone:    nullStr(u.ParentPhone),
		Role:           u.Role,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}

// membershipJSON serializes a membership with its dates in plain YYYY-MM-DD
// form, the way the frontend renders them.
type membershipJSON struct {
	ID            int64   `json:"id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	AmountPaid    float64 `json:"amount_paid"`
}

func membershipOut(m repository.Membership) membershipJSON {
	return membershipJSON{
		ID:            m.ID,
		StartDate:     m.StartDate.Format("2006-01-02"),
		EndDate:       m.EndDate.Format("2006-01-02"),
		Status:        m.Status,
		PaymentStatus: m.PaymentStatus,
		AmountPaid:    m.AmountPaid,
	}
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
