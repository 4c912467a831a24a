package database

import (
	"context"
	"database/sql"
	"fmt"
)

// migration is one versioned schema step. Versions are applied in order and
// recorded in schema_migrations, so re-running Migrate against an up-to-date
// database is a no-op. Steps are additive only; nothing here drops or
// rewrites existing data.
type migration struct {
	version int
	name    string
	stmts   []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "base schema",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				email TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				first_name TEXT NOT NULL,
				last_name TEXT NOT NULL,
				phone TEXT,
				address TEXT,
				personnummer TEXT UNIQUE,
				role TEXT NOT NULL CHECK (role IN ('admin', 'member')),
				is_active BOOLEAN DEFAULT 1,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS sports (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE,
				description TEXT,
				age_groups TEXT,
				is_active BOOLEAN DEFAULT 1,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS schedules (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				sport_id INTEGER NOT NULL,
				day_of_week TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT NOT NULL,
				age_group TEXT NOT NULL,
				max_participants INTEGER DEFAULT 20,
				is_active BOOLEAN DEFAULT 1,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (sport_id) REFERENCES sports (id) ON DELETE CASCADE
			)`,
			`CREATE TABLE IF NOT EXISTS memberships (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				start_date DATE NOT NULL,
				end_date DATE NOT NULL,
				status TEXT NOT NULL CHECK (status IN ('active', 'expired', 'cancelled')),
				payment_status TEXT NOT NULL CHECK (payment_status IN ('pending', 'paid', 'failed')),
				amount_paid REAL DEFAULT 600.00,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
			)`,
			`CREATE TABLE IF NOT EXISTS payments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				membership_id INTEGER NOT NULL,
				amount REAL NOT NULL,
				payment_method TEXT NOT NULL,
				transaction_id TEXT UNIQUE,
				status TEXT NOT NULL CHECK (status IN ('pending', 'completed', 'failed', 'refunded')),
				payment_date DATETIME,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (membership_id) REFERENCES memberships (id) ON DELETE CASCADE
			)`,
			`CREATE TABLE IF NOT EXISTS statistics (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				metric_type TEXT NOT NULL,
				metric_value REAL NOT NULL,
				date_recorded DATE NOT NULL,
				additional_data TEXT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS social_media_links (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				platform TEXT NOT NULL,
				url TEXT NOT NULL,
				icon_class TEXT NOT NULL,
				display_order INTEGER DEFAULT 0,
				is_active BOOLEAN DEFAULT 1,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS contact_info (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				type TEXT NOT NULL,
				label TEXT NOT NULL,
				value TEXT NOT NULL,
				href TEXT,
				display_order INTEGER DEFAULT 0,
				is_active BOOLEAN DEFAULT 1,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
		},
	},
	{
		version: 2,
		name:    "sport images",
		stmts: []string{
			`ALTER TABLE sports ADD COLUMN image_path TEXT`,
		},
	},
	{
		version: 3,
		name:    "guardian contact for minors",
		stmts: []string{
			`ALTER TABLE users ADD COLUMN parent_name TEXT`,
			`ALTER TABLE users ADD COLUMN parent_lastname TEXT`,
			`ALTER TABLE users ADD COLUMN parent_phone TEXT`,
		},
	},
}

// Migrate brings the database schema up to the latest version. Each pending
// migration runs inside its own transaction together with the bookkeeping
// row, so a failed step leaves the version table consistent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name); err != nil {
		return err
	}
	return tx.Commit()
}
