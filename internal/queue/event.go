// Package queue defines message payloads exchanged over the message broker.
package queue

// PaymentCompletedEvent is published when a membership payment goes through.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type PaymentCompletedEvent struct {
	PaymentID     int64   `json:"payment_id"`
	MembershipID  int64   `json:"membership_id"`
	UserID        int64   `json:"user_id"`
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	TransactionID string  `json:"transaction_id"`
	TermStart     string  `json:"term_start"`
	TermEnd       string  `json:"term_end"`
	PaidAt        string  `json:"paid_at"`
}
