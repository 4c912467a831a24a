package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nylose/sportcenter/internal/config"
	"github.com/nylose/sportcenter/internal/database"
	"github.com/nylose/sportcenter/internal/email"
	"github.com/nylose/sportcenter/internal/handler"
	"github.com/nylose/sportcenter/internal/payment"
	"github.com/nylose/sportcenter/internal/repository"
	"github.com/nylose/sportcenter/internal/router"
)

// newTestServer wires the full API against a seeded in-memory database.
func newTestServer(t *testing.T) (*echo.Echo, *sql.DB) {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))
	require.NoError(t, database.Seed(ctx, db, 4))

	cfg := config.Config{
		Env:          "test",
		Port:         "0",
		DBPath:       ":memory:",
		UploadDir:    t.TempDir(),
		JWTSecret:    "test-secret",
		TokenTTLDays: 7,
		BcryptCost:   4,
	}
	logger := zap.NewNop()

	users := repository.NewUserRepo(db)
	memberships := repository.NewMembershipRepo(db)
	payments := repository.NewPaymentRepo(db)

	base := handler.Base{Log: logger}
	authH := &handler.AuthHandler{
		Base: base, Cfg: cfg,
		Users: users, Memberships: memberships, Payments: payments,
		Processor: payment.MockProcessor{}, Mailer: email.NewFromEnv(logger),
	}
	publicH := &handler.PublicHandler{
		Base: base, DB: db,
		Sports:    repository.NewSportRepo(db),
		Schedules: repository.NewScheduleRepo(db),
		Social:    repository.NewSocialMediaRepo(db),
		Contact:   repository.NewContactInfoRepo(db),
	}
	memberH := &handler.MemberHandler{Base: base, Users: users, Memberships: memberships, Payments: payments}
	adminH := &handler.AdminHandler{
		Base: base, Cfg: cfg,
		Users:       users,
		Sports:      repository.NewSportRepo(db),
		Schedules:   repository.NewScheduleRepo(db),
		Social:      repository.NewSocialMediaRepo(db),
		Contact:     repository.NewContactInfoRepo(db),
		Memberships: memberships,
		Stats:       repository.NewStatsRepo(db),
	}

	e := echo.New()
	e.HTTPErrorHandler = router.ErrorHandler(false)
	router.RegisterCore(e, cfg.UploadDir)
	router.RegisterPublic(e, publicH)
	router.RegisterAuth(e, authH, cfg.JWTSecret, users)
	router.RegisterMember(e, memberH, authH, cfg.JWTSecret, users)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret, users)
	return e, db
}

func do(t *testing.T, e *echo.Echo, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			out = nil // list responses decode separately
		}
	}
	return rec, out
}

func registration(email string) map[string]any {
	return map[string]any{
		"email":        email,
		"password":     "hemligt1",
		"first_name":   "Anna",
		"last_name":    "Svensson",
		"personnummer": "19900415-1234",
		"phone":        "+46701234567",
		"address":      "Storgatan 1",
	}
}

func registerMember(t *testing.T, e *echo.Echo, emailAddr string) string {
	t.Helper()
	rec, out := do(t, e, http.MethodPost, "/api/auth/register", "", registration(emailAddr))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return out["token"].(string)
}

func loginAdmin(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec, out := do(t, e, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "admin@nylose.se", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return out["token"].(string)
}

func TestRegisterCreatesPendingTerm(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerMember(t, e, "anna@example.com")

	rec, out := do(t, e, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	m := out["membership"].(map[string]any)
	assert.Equal(t, "pending", m["payment_status"])
	assert.Equal(t, 600.0, m["amount_paid"])

	start, err := time.Parse("2006-01-02", m["start_date"].(string))
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 3, 0).Format("2006-01-02"), m["end_date"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e, _ := newTestServer(t)
	registerMember(t, e, "anna@example.com")

	body := registration("anna@example.com")
	body["personnummer"] = "19850101-5678"
	rec, out := do(t, e, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User with this email already exists", out["error"])
}

func TestRegisterValidation(t *testing.T) {
	e, _ := newTestServer(t)
	body := registration("anna@example.com")
	body["personnummer"] = "bad"
	rec, out := do(t, e, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", out["error"])
	assert.NotEmpty(t, out["details"])
}

func TestLoginRejectionsAreUniform(t *testing.T) {
	e, _ := newTestServer(t)

	rec, out := do(t, e, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "admin@nylose.se", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", out["error"])

	rec, out = do(t, e, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ghost@nylose.se", "password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", out["error"], "unknown email must read the same as a wrong password")
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	e, _ := newTestServer(t)

	rec, out := do(t, e, http.MethodGet, "/api/admin/members", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token required", out["error"])

	rec, out = do(t, e, http.MethodGet, "/api/admin/members", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", out["error"])

	member := registerMember(t, e, "anna@example.com")
	rec, out = do(t, e, http.MethodGet, "/api/admin/members", member, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", out["error"])

	admin := loginAdmin(t, e)
	rec, _ = do(t, e, http.MethodGet, "/api/admin/members", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPaymentFlow(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerMember(t, e, "anna@example.com")

	_, profile := do(t, e, http.MethodGet, "/api/auth/profile", token, nil)
	membershipID := profile["membership"].(map[string]any)["id"].(float64)

	rec, out := do(t, e, http.MethodPost, "/api/auth/payment", token, map[string]any{
		"membership_id": membershipID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := out["payment"].(map[string]any)
	assert.Equal(t, "completed", p["status"])
	assert.Equal(t, "swish", p["payment_method"], "method defaults to swish")
	assert.Contains(t, p["transaction_id"].(string), "mock_txn_")

	rec, out = do(t, e, http.MethodPost, "/api/auth/payment", token, map[string]any{
		"membership_id": membershipID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Membership is already paid", out["error"])

	rec, out = do(t, e, http.MethodGet, "/api/member/membership/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["has_membership"])
	assert.Equal(t, true, out["is_active"])
	assert.InDelta(t, 91, out["days_remaining"].(float64), 2)

	rec, _ = do(t, e, http.MethodGet, "/api/member/payments", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRenewalExtendsRunningTerm(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerMember(t, e, "anna@example.com")

	// The first term is still unpaid: renewal must point at payment instead.
	rec, _ := do(t, e, http.MethodPost, "/api/member/membership/renew", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, profile := do(t, e, http.MethodGet, "/api/auth/profile", token, nil)
	current := profile["membership"].(map[string]any)
	_, _ = do(t, e, http.MethodPost, "/api/auth/payment", token, map[string]any{
		"membership_id": current["id"],
	})

	rec, out := do(t, e, http.MethodPost, "/api/member/membership/renew", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	renewed := out["membership"].(map[string]any)
	assert.Equal(t, current["end_date"], renewed["start_date"], "new term starts where the running one ends")
	assert.Equal(t, "pending", renewed["payment_status"])
}

func TestRenewalAfterLapsedUnpaidTermStartsFresh(t *testing.T) {
	e, db := newTestServer(t)
	token := registerMember(t, e, "anna@example.com")

	// Age the registration term far into the past without paying it.
	_, err := db.Exec(`UPDATE memberships SET start_date = '2020-01-01', end_date = '2020-04-01'`)
	require.NoError(t, err)

	rec, out := do(t, e, http.MethodPost, "/api/member/membership/renew", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	renewed := out["membership"].(map[string]any)
	assert.Equal(t, time.Now().Format("2006-01-02"), renewed["start_date"],
		"a lapsed term, paid or not, renews fresh from today")
	assert.Equal(t, "pending", renewed["payment_status"])

	rec, _ = do(t, e, http.MethodGet, "/api/member/membership/status", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestScheduleCapacityDefaultsToTwenty(t *testing.T) {
	e, db := newTestServer(t)
	admin := loginAdmin(t, e)

	var sportID int64
	require.NoError(t, db.QueryRow(`SELECT id FROM sports WHERE is_active = 1 LIMIT 1`).Scan(&sportID))

	rec, _ := do(t, e, http.MethodPost, "/api/admin/schedules", admin, map[string]any{
		"sport_id": sportID, "day_of_week": "Fredag",
		"start_time": "06:15", "end_time": "07:15", "age_group": "Vuxna",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var capacity int
	require.NoError(t, db.QueryRow(
		`SELECT max_participants FROM schedules WHERE day_of_week = 'Fredag' AND start_time = '06:15'`).
		Scan(&capacity))
	assert.Equal(t, 20, capacity, "omitted capacity falls back to the house default")
}

func TestProfileUpdate(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerMember(t, e, "anna@example.com")

	rec, out := do(t, e, http.MethodPut, "/api/auth/profile", token, map[string]any{
		"first_name": "Anna-Lena",
		"last_name":  "Svensson",
		"phone":      "0317654321",
		"address":    "Nygatan 2",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	u := out["user"].(map[string]any)
	assert.Equal(t, "Anna-Lena", u["first_name"])
	assert.Equal(t, "anna@example.com", u["email"], "email is immutable here")
	assert.NotContains(t, u, "password_hash")

	rec, out = do(t, e, http.MethodPut, "/api/auth/profile", token, map[string]any{
		"first_name": "", "last_name": "Svensson",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", out["error"])
}

func TestDeactivatedAccountTokenStopsWorking(t *testing.T) {
	e, db := newTestServer(t)
	token := registerMember(t, e, "anna@example.com")
	admin := loginAdmin(t, e)

	var userID int64
	require.NoError(t, db.QueryRow(`SELECT id FROM users WHERE email = 'anna@example.com'`).Scan(&userID))

	rec, _ := do(t, e, http.MethodPut, "/api/admin/members/"+itoa(userID)+"/status", admin,
		map[string]any{"is_active": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, out := do(t, e, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or inactive user", out["error"])
}

func TestAdminCannotDeactivateSelf(t *testing.T) {
	e, db := newTestServer(t)
	admin := loginAdmin(t, e)

	var adminID int64
	require.NoError(t, db.QueryRow(`SELECT id FROM users WHERE role = 'admin'`).Scan(&adminID))

	rec, out := do(t, e, http.MethodPut, "/api/admin/admins/"+itoa(adminID)+"/status", admin,
		map[string]any{"is_active": false})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You cannot deactivate your own account", out["error"])
}

func TestPublicEndpoints(t *testing.T) {
	e, _ := newTestServer(t)

	for _, path := range []string{
		"/api/public/sports",
		"/api/public/schedule",
		"/api/public/schedule/brottning",
		"/api/public/pricing",
		"/api/public/social-media",
		"/api/public/contact-info",
		"/api/public/status",
		"/api/health",
	} {
		rec, _ := do(t, e, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	// Seeded schedule comes back week-ordered.
	rec, _ := do(t, e, http.MethodGet, "/api/public/schedule", "", nil)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.NotEmpty(t, entries)
	assert.Equal(t, "Måndag", entries[0]["day_of_week"])

	rec, out := do(t, e, http.MethodGet, "/api/public/pricing", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 600.0, out["term_price"])
	assert.Equal(t, "SEK", out["currency"])
	assert.Equal(t, "3 months", out["term_length"])
}

func TestUnknownRouteIs404(t *testing.T) {
	e, _ := newTestServer(t)
	rec, out := do(t, e, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", out["error"])
}

func TestAdminSportAndScheduleCRUD(t *testing.T) {
	e, _ := newTestServer(t)
	admin := loginAdmin(t, e)

	// Sports are created from multipart form data.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Judo"))
	require.NoError(t, w.WriteField("description", "Japansk kampsport"))
	require.NoError(t, w.WriteField("age_groups", `["Ungdom","Vuxna"]`))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/sports", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+admin)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	sportID := created["sport"].(map[string]any)["id"].(float64)

	// Schedule create validates day and time order.
	r2, out := do(t, e, http.MethodPost, "/api/admin/schedules", admin, map[string]any{
		"sport_id": sportID, "day_of_week": "Funday",
		"start_time": "17:00", "end_time": "18:00",
	})
	assert.Equal(t, http.StatusBadRequest, r2.Code)
	assert.Equal(t, "Validation failed", out["error"])

	r2, out = do(t, e, http.MethodPost, "/api/admin/schedules", admin, map[string]any{
		"sport_id": sportID, "day_of_week": "Torsdag",
		"start_time": "17:00", "end_time": "18:30",
		"age_group": "Ungdom", "max_participants": 16,
	})
	require.Equal(t, http.StatusCreated, r2.Code, r2.Body.String())

	// The new session shows up on the public schedule for that sport.
	r2, _ = do(t, e, http.MethodGet, "/api/public/schedule/judo", "", nil)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(r2.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Judo", entries[0]["sport_name"])

	// Deleting the sport is blocked while that session is active.
	r2, out = do(t, e, http.MethodDelete, "/api/admin/sports/"+itoa(int64(sportID)), admin, nil)
	assert.Equal(t, http.StatusConflict, r2.Code)
	assert.Equal(t, "Cannot delete sport with active schedule sessions", out["error"])
}

func TestAdminStatistics(t *testing.T) {
	e, _ := newTestServer(t)
	admin := loginAdmin(t, e)
	registerMember(t, e, "anna@example.com")

	rec, out := do(t, e, http.MethodGet, "/api/admin/statistics", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1.0, out["total_members"])
	assert.Equal(t, 1.0, out["total_admins"])
	assert.Equal(t, 3.0, out["total_sports"])
	assert.Equal(t, 1.0, out["recent_registrations"])
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
