package repository

import (
	"context"
	"database/sql"
	"time"
)

// Payment mirrors the 'payments' table: one transaction attempt against a
// membership. A membership can accumulate several attempts.
type Payment struct {
	ID            int64
	MembershipID  int64
	Amount        float64
	PaymentMethod string
	TransactionID string
	Status        string
	PaymentDate   time.Time
	CreatedAt     time.Time
}

// PaymentWithTerm joins the payment with the term it paid for, as shown in
// the member's payment history.
type PaymentWithTerm struct {
	Payment
	StartDate        time.Time
	EndDate          time.Time
	MembershipStatus string
}

type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// Create records a completed payment. A reused transaction id surfaces as
// ErrDuplicate.
func (r *PaymentRepo) Create(ctx context.Context, p Payment) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO payments (membership_id, amount, payment_method, transaction_id, status, payment_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.MembershipID, p.Amount, p.PaymentMethod, p.TransactionID, p.Status,
		p.PaymentDate.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return res.LastInsertId()
}

// ListByUser returns the user's payment history, newest first.
func (r *PaymentRepo) ListByUser(ctx context.Context, userID int64) ([]PaymentWithTerm, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT p.id, p.membership_id, p.amount, p.payment_method, p.transaction_id, p.status,
			p.payment_date, p.created_at, m.start_date, m.end_date, m.status
		 FROM payments p JOIN memberships m ON p.membership_id = m.id
		 WHERE m.user_id = ?
		 ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PaymentWithTerm
	for rows.Next() {
		var p PaymentWithTerm
		if err := rows.Scan(&p.ID, &p.MembershipID, &p.Amount, &p.PaymentMethod, &p.TransactionID,
			&p.Status, &p.PaymentDate, &p.CreatedAt, &p.StartDate, &p.EndDate, &p.MembershipStatus); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
