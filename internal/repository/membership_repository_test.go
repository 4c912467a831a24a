package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipLifecycle(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepo(db)
	memberships := NewMembershipRepo(db)
	ctx := context.Background()

	userID := newMember(t, users, "anna@example.com", "19900415-1234")
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0)

	id, err := memberships.Create(ctx, userID, start, end, 600)
	require.NoError(t, err)

	m, err := memberships.LatestActiveByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, "active", m.Status)
	assert.Equal(t, "pending", m.PaymentStatus)
	assert.Equal(t, "2025-06-01", m.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2025-09-01", m.EndDate.Format("2006-01-02"))

	require.NoError(t, memberships.MarkPaid(ctx, id))
	m, err = memberships.GetByIDAndUser(ctx, id, userID)
	require.NoError(t, err)
	assert.Equal(t, "paid", m.PaymentStatus)
}

func TestMembershipLatestPicksNewestTerm(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepo(db)
	memberships := NewMembershipRepo(db)
	ctx := context.Background()

	userID := newMember(t, users, "anna@example.com", "19900415-1234")
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := memberships.Create(ctx, userID, first, first.AddDate(0, 3, 0), 600)
	require.NoError(t, err)
	second := first.AddDate(0, 3, 0)
	latest, err := memberships.Create(ctx, userID, second, second.AddDate(0, 3, 0), 600)
	require.NoError(t, err)

	m, err := memberships.LatestActiveByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, latest, m.ID)
}

func TestMembershipOwnershipScoping(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepo(db)
	memberships := NewMembershipRepo(db)
	ctx := context.Background()

	anna := newMember(t, users, "anna@example.com", "19900415-1234")
	erik := newMember(t, users, "erik@example.com", "19850101-5678")

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	id, err := memberships.Create(ctx, anna, start, start.AddDate(0, 3, 0), 600)
	require.NoError(t, err)

	_, err = memberships.GetByIDAndUser(ctx, id, erik)
	assert.ErrorIs(t, err, ErrNotFound, "another member's term is indistinguishable from a missing one")

	_, err = memberships.LatestActiveByUser(ctx, erik)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaymentCreateAndHistory(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepo(db)
	memberships := NewMembershipRepo(db)
	payments := NewPaymentRepo(db)
	ctx := context.Background()

	userID := newMember(t, users, "anna@example.com", "19900415-1234")
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mID, err := memberships.Create(ctx, userID, start, start.AddDate(0, 3, 0), 600)
	require.NoError(t, err)

	paidAt := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
	_, err = payments.Create(ctx, Payment{
		MembershipID:  mID,
		Amount:        600,
		PaymentMethod: "swish",
		TransactionID: "mock_txn_1",
		Status:        "completed",
		PaymentDate:   paidAt,
	})
	require.NoError(t, err)

	// Transaction ids are unique.
	_, err = payments.Create(ctx, Payment{
		MembershipID:  mID,
		Amount:        600,
		PaymentMethod: "swish",
		TransactionID: "mock_txn_1",
		Status:        "completed",
		PaymentDate:   paidAt,
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	history, err := payments.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "mock_txn_1", history[0].TransactionID)
	assert.Equal(t, "2025-06-01", history[0].StartDate.Format("2006-01-02"))
	assert.Equal(t, 600.0, history[0].Amount)
}
