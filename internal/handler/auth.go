package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nylose/sportcenter/internal/config"
	"github.com/nylose/sportcenter/internal/email"
	"github.com/nylose/sportcenter/internal/membership"
	"github.com/nylose/sportcenter/internal/middleware"
	"github.com/nylose/sportcenter/internal/payment"
	"github.com/nylose/sportcenter/internal/queue"
	"github.com/nylose/sportcenter/internal/repository"
	queue_publisher "github.com/nylose/sportcenter/internal/service"
	"github.com/nylose/sportcenter/internal/utils"
	"github.com/nylose/sportcenter/internal/validate"
)

// AuthHandler owns registration, login, the caller's own profile and the
// membership payment flow.
type AuthHandler struct {
	Base
	Cfg         config.Config
	Users       *repository.UserRepo
	Memberships *repository.MembershipRepo
	Payments    *repository.PaymentRepo
	Processor   payment.Processor
	Mailer      *email.Mailer
}

type registerRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Personnummer   string `json:"personnummer"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	ParentName     string `json:"parent_name"`
	ParentLastname string `json:"parent_lastname"`
	ParentPhone    string `json:"parent_phone"`
}

// Register creates a member account together with its first unpaid
// three-month term and returns a fresh access token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	now := time.Now()
	details := validate.ValidateRegistration(validate.Registration{
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Personnummer:   req.Personnummer,
		Phone:          req.Phone,
		Address:        req.Address,
		ParentName:     req.ParentName,
		ParentLastname: req.ParentLastname,
		ParentPhone:    req.ParentPhone,
	}, now)
	if len(details) > 0 {
		return validationFailed(c, details)
	}

	ctx := c.Request().Context()

	taken, err := h.Users.EmailExists(ctx, req.Email)
	if err != nil {
		return h.internalError(c, err, "Registration failed")
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{"error": "User with this email already exists"})
	}
	taken, err = h.Users.PersonnummerExists(ctx, req.Personnummer)
	if err != nil {
		return h.internalError(c, err, "Registration failed")
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{"error": "User with this personnummer already exists"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return h.internalError(c, err, "Registration failed")
	}

	userID, err := h.Users.Create(ctx, repository.NewUser{
		Email:          req.Email,
		PasswordHash:   hash,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Address:        req.Address,
		Personnummer:   req.Personnummer,
		ParentName:     req.ParentName,
		ParentLastname: req.ParentLastname,
		ParentPhone:    req.ParentPhone,
		Role:           "member",
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "User with this email already exists"})
		}
		return h.internalError(c, err, "Registration failed")
	}

	termStart := now
	termEnd := membership.TermEnd(termStart)
	if _, err := h.Memberships.Create(ctx, userID, termStart, termEnd, membership.TermPrice); err != nil {
		// The account exists at this point; failing the whole request would
		// strand it, so the gap is logged for manual follow-up instead.
		h.Log.Error("membership creation failed after user insert",
			zap.Int64("user_id", userID), zap.Error(err))
		return h.internalError(c, err, "Registration failed")
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, req.Email, "member", h.Cfg.TokenTTLDays)
	if err != nil {
		return h.internalError(c, err, "Registration failed")
	}

	go h.Mailer.SendRegistrationConfirmation(req.Email, req.FirstName,
		termStart.Format("2006-01-02"), termEnd.Format("2006-01-02"))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Registration successful",
		"token":   token.Token,
		"user": echo.Map{
			"id":         userID,
			"email":      req.Email,
			"first_name": req.FirstName,
			"last_name":  req.LastName,
			"role":       "member",
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a token. Unknown email, wrong
// password and a deactivated account all answer with the same 401 so the
// response never confirms whether an address is registered.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if details := validate.ValidateLogin(req.Email, req.Password); len(details) > 0 {
		return validationFailed(c, details)
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
		}
		return h.internalError(c, err, "Login failed")
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Role, h.Cfg.TokenTTLDays)
	if err != nil {
		return h.internalError(c, err, "Login failed")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token.Token,
		"user": echo.Map{
			"id":         u.ID,
			"email":      u.Email,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"role":       u.Role,
		},
	})
}

// GetProfile returns the caller's account and most recent active term.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
	}

	out := echo.Map{"user": sanitizeUser(u)}
	m, err := h.Memberships.LatestActiveByUser(c.Request().Context(), u.ID)
	switch {
	case err == nil:
		out["membership"] = membershipOut(m)
	case errors.Is(err, repository.ErrNotFound):
		out["membership"] = nil
	default:
		return h.internalError(c, err, "Failed to load profile")
	}
	return c.JSON(http.StatusOK, out)
}

type profileUpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// UpdateProfile changes name and contact fields. Email, personnummer and
// role are immutable through this endpoint.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
	}
	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	var details []string
	if req.FirstName == "" {
		details = append(details, "First name is required")
	}
	if req.LastName == "" {
		details = append(details, "Last name is required")
	}
	if req.Phone != "" && !validate.ValidPhone(req.Phone) {
		details = append(details, "Invalid phone number format")
	}
	if len(details) > 0 {
		return validationFailed(c, details)
	}

	ctx := c.Request().Context()
	if err := h.Users.UpdateProfile(ctx, u.ID, req.FirstName, req.LastName, req.Phone, req.Address); err != nil {
		return h.internalError(c, err, "Failed to update profile")
	}
	updated, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		return h.internalError(c, err, "Failed to update profile")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"user":    sanitizeUser(updated),
	})
}

type paymentRequest struct {
	MembershipID  int64  `json:"membership_id"`
	PaymentMethod string `json:"payment_method"`
}

// Pay charges an unpaid term through the configured processor, marks it
// paid and records the transaction. The broker publish and the email are
// best effort and never fail the request.
func (h *AuthHandler) Pay(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
	}
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.MembershipID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Membership ID is required"})
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "swish"
	}

	ctx := c.Request().Context()
	m, err := h.Memberships.GetByIDAndUser(ctx, req.MembershipID, u.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Membership not found"})
		}
		return h.internalError(c, err, "Payment failed")
	}
	if m.PaymentStatus == "paid" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Membership is already paid"})
	}

	receipt, err := h.Processor.Charge(ctx, m.AmountPaid, req.PaymentMethod)
	if err != nil {
		return h.internalError(c, err, "Payment failed")
	}
	if err := h.Memberships.MarkPaid(ctx, m.ID); err != nil {
		return h.internalError(c, err, "Payment failed")
	}
	paymentID, err := h.Payments.Create(ctx, repository.Payment{
		MembershipID:  m.ID,
		Amount:        receipt.Amount,
		PaymentMethod: receipt.Method,
		TransactionID: receipt.TransactionID,
		Status:        "completed",
		PaymentDate:   receipt.PaidAt,
	})
	if err != nil {
		return h.internalError(c, err, "Payment failed")
	}

	event := queue.PaymentCompletedEvent{
		PaymentID:     paymentID,
		MembershipID:  m.ID,
		UserID:        u.ID,
		Email:         u.Email,
		Amount:        receipt.Amount,
		Method:        receipt.Method,
		TransactionID: receipt.TransactionID,
		TermStart:     m.StartDate.Format("2006-01-02"),
		TermEnd:       m.EndDate.Format("2006-01-02"),
		PaidAt:        receipt.PaidAt.UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queue_publisher.PublishPaymentCompleted(pubCtx, h.Log, event); err != nil {
			h.Log.Warn("payment event not published", zap.Int64("payment_id", paymentID), zap.Error(err))
		}
	}()
	go h.Mailer.SendPaymentConfirmation(u.Email, u.FirstName, receipt.TransactionID, receipt.Amount)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Payment completed successfully",
		"payment": echo.Map{
			"id":             paymentID,
			"membership_id":  m.ID,
			"amount":         receipt.Amount,
			"payment_method": receipt.Method,
			"transaction_id": receipt.TransactionID,
			"status":         "completed",
		},
	})
}
