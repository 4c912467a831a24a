package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nylose/sportcenter/internal/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func newMember(t *testing.T, users *UserRepo, email, pnr string) int64 {
	t.Helper()
	id, err := users.Create(context.Background(), NewUser{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "Person",
		Personnummer: pnr,
		Role:         "member",
	})
	require.NoError(t, err)
	return id
}
