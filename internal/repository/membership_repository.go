package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Membership mirrors the 'memberships' table: one paid 3-month term.
// StartDate and EndDate are calendar dates; whether a membership is still
// running is always derived from EndDate at read time, never stored.
type Membership struct {
	ID            int64
	UserID        int64
	StartDate     time.Time
	EndDate       time.Time
	Status        string
	PaymentStatus string
	AmountPaid    float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type MembershipRepo struct{ DB *sql.DB }

func NewMembershipRepo(db *sql.DB) *MembershipRepo { return &MembershipRepo{DB: db} }

const membershipColumns = `id, user_id, start_date, end_date, status, payment_status, amount_paid, created_at, updated_at`

const dateLayout = "2006-01-02"

// Create inserts a pending-payment term for the user.
func (r *MembershipRepo) Create(ctx context.Context, userID int64, start, end time.Time, amount float64) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO memberships (user_id, start_date, end_date, status, payment_status, amount_paid)
		 VALUES (?, ?, ?, 'active', 'pending', ?)`,
		userID, start.Format(dateLayout), end.Format(dateLayout), amount)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// LatestActiveByUser returns the user's active membership with the latest
// end date, or ErrNotFound when none exists.
func (r *MembershipRepo) LatestActiveByUser(ctx context.Context, userID int64) (Membership, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships
		 WHERE user_id = ? AND status = 'active'
		 ORDER BY end_date DESC LIMIT 1`, userID))
}

// GetByIDAndUser returns a membership only when it belongs to the user;
// anything else is ErrNotFound so callers cannot probe other members' terms.
func (r *MembershipRepo) GetByIDAndUser(ctx context.Context, id, userID int64) (Membership, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships
		 WHERE id = ? AND user_id = ? LIMIT 1`, id, userID))
}

// MarkPaid flips a membership to paid.
func (r *MembershipRepo) MarkPaid(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE memberships SET payment_status = 'paid', updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *MembershipRepo) scanOne(row *sql.Row) (Membership, error) {
	var m Membership
	err := row.Scan(&m.ID, &m.UserID, &m.StartDate, &m.EndDate, &m.Status,
		&m.PaymentStatus, &m.AmountPaid, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Membership{}, ErrNotFound
	}
	return m, err
}
