package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateAppliesAllVersions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))

	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, len(migrations), applied)

	// Columns added by later migrations must exist.
	for _, q := range []string{
		`SELECT image_path FROM sports LIMIT 1`,
		`SELECT parent_name, parent_lastname, parent_phone FROM users LIMIT 1`,
	} {
		_, err := db.Exec(q)
		assert.NoError(t, err, q)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db), "rerunning against an up-to-date schema must be a no-op")

	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, len(migrations), applied)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Migrate(context.Background(), db))

	_, err := db.Exec(
		`INSERT INTO schedules (sport_id, day_of_week, start_time, end_time) VALUES (999, 'Måndag', '17:00', '18:00')`)
	assert.Error(t, err, "schedule insert must fail for a missing sport")
}

func TestSeed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Seed(ctx, db, 4))

	var users, sports, schedules, social, contact int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'admin'`).Scan(&users))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sports`).Scan(&sports))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schedules`).Scan(&schedules))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM social_media_links`).Scan(&social))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM contact_info`).Scan(&contact))
	assert.Equal(t, 1, users)
	assert.Equal(t, 3, sports)
	assert.Equal(t, 10, schedules)
	assert.Equal(t, 3, social)
	assert.Equal(t, 3, contact)

	// A second run sees a non-empty users table and leaves everything alone.
	require.NoError(t, Seed(ctx, db, 4))
	var after int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&after))
	assert.Equal(t, 1, after)
}
