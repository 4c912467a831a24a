package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nylose/sportcenter/internal/utils"
)

// Seed populates a fresh database with the club's default content: one admin
// account, the three sports, the fixed weekly schedule and the public site's
// social links and contact entries. It only runs when the users table is
// empty, which keeps startup idempotent.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) error {
	var userCount int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if userCount > 0 {
		return nil
	}

	adminHash, err := utils.HashPassword("admin123", bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, role) VALUES (?, ?, ?, ?, ?)`,
		"admin@nylose.se", adminHash, "Admin", "User", "admin"); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	sports := []struct {
		name, description, ageGroups string
	}{
		{"Brottning", "Greco-Roman och Freestyle brottning", `["6-15 år","15+"]`},
		{"Wresfit", "Funktionell styrketräning inspirerad av brottning", `["Alla åldrar"]`},
		{"Girls Only", "Boxning för tjejer i trygg miljö", `["7-13 år","13+"]`},
	}
	sportIDs := make(map[string]int64, len(sports))
	for _, s := range sports {
		res, err := db.ExecContext(ctx,
			`INSERT INTO sports (name, description, age_groups) VALUES (?, ?, ?)`,
			s.name, s.description, s.ageGroups)
		if err != nil {
			return fmt.Errorf("seed sport %s: %w", s.name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		sportIDs[s.name] = id
	}

	// The club's actual weekly schedule.
	sessions := []struct {
		sport, day, start, end, ageGroup string
	}{
		{"Brottning", "Måndag", "18:00", "19:00", "6-15 år"},
		{"Brottning", "Måndag", "19:00", "20:30", "15+"},
		{"Girls Only", "Tisdag", "17:30", "18:30", "7-13 år"},
		{"Girls Only", "Tisdag", "18:30", "19:45", "13+"},
		{"Brottning", "Onsdag", "18:00", "19:00", "6-15 år"},
		{"Brottning", "Onsdag", "19:00", "20:30", "15+"},
		{"Girls Only", "Torsdag", "17:30", "18:30", "7-13 år"},
		{"Girls Only", "Torsdag", "18:30", "19:45", "13+"},
		{"Wresfit", "Fredag", "18:00", "20:00", "Alla åldrar"},
		{"Brottning", "Söndag", "13:00", "14:00", "6-15 år"},
	}
	for _, s := range sessions {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO schedules (sport_id, day_of_week, start_time, end_time, age_group) VALUES (?, ?, ?, ?, ?)`,
			sportIDs[s.sport], s.day, s.start, s.end, s.ageGroup); err != nil {
			return fmt.Errorf("seed schedule %s %s: %w", s.sport, s.day, err)
		}
	}

	links := []struct {
		platform, url, icon string
		order               int
	}{
		{"facebook", "https://www.facebook.com/nylosesportcenter", "fab fa-facebook", 1},
		{"instagram", "https://www.instagram.com/nylosegirls/", "fab fa-instagram", 2},
		{"tiktok", "https://www.tiktok.com/@nylosegirls", "fab fa-tiktok", 3},
	}
	for _, l := range links {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO social_media_links (platform, url, icon_class, display_order) VALUES (?, ?, ?, ?)`,
			l.platform, l.url, l.icon, l.order); err != nil {
			return fmt.Errorf("seed social link %s: %w", l.platform, err)
		}
	}

	contacts := []struct {
		typ, label, value, href string
		order                   int
	}{
		{"phone", "Telefon", "072-910 25 75", "tel:0729102575", 1},
		{"phone", "Telefon", "070-042 42 21", "tel:0700424221", 2},
		{"email", "E-post", "nylosesportcenter@gmail.com", "mailto:nylosesportcenter@gmail.com", 3},
	}
	for _, ci := range contacts {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO contact_info (type, label, value, href, display_order) VALUES (?, ?, ?, ?, ?)`,
			ci.typ, ci.label, ci.value, ci.href, ci.order); err != nil {
			return fmt.Errorf("seed contact %s: %w", ci.value, err)
		}
	}
	return nil
}
