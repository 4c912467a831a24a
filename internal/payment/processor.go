// Package payment isolates the payment gateway behind a small interface.
// The club currently runs on a mock processor; a real Swish integration
// would implement Processor without touching the membership handlers.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Receipt is the result of a successful charge.
type Receipt struct {
	TransactionID string
	Amount        float64
	Method        string
	PaidAt        time.Time
}

// Processor charges an amount using the given method and returns a receipt.
type Processor interface {
	Charge(ctx context.Context, amount float64, method string) (Receipt, error)
}

// MockProcessor approves every charge and fabricates a transaction id. It
// stands in until a real gateway is wired up.
type MockProcessor struct{}

// Charge implements Processor. Transaction ids look like
// mock_txn_<unix-millis>_<random>, unique enough for the payments table's
// unique constraint.
func (MockProcessor) Charge(_ context.Context, amount float64, method string) (Receipt, error) {
	now := time.Now().UTC()
	return Receipt{
		TransactionID: fmt.Sprintf("mock_txn_%d_%s", now.UnixMilli(), uuid.NewString()[:8]),
		Amount:        amount,
		Method:        method,
		PaidAt:        now,
	}, nil
}
