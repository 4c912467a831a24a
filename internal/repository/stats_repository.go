package repository

// Dashboard statistics are computed live from the primary tables on every
// request. The statistics table exists in the schema for ad hoc use but no
// route writes to it; the dashboard never reads precomputed rows.

import (
	"context"
	"database/sql"
)

// MonthCount is one month's worth of registrations, keyed "YYYY-MM".
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// DashboardStats aggregates the live counts shown on the admin dashboard.
type DashboardStats struct {
	TotalAdmins         int `json:"total_admins"`
	ActiveAdmins        int `json:"active_admins"`
	TotalMembers        int `json:"total_members"`
	ActiveMembers       int `json:"active_members"`
	TotalSports         int `json:"total_sports"`
	TotalSessions       int `json:"total_sessions"`
	RecentRegistrations int `json:"recent_registrations"`
	SystemStats         struct {
		SportsWithSchedules  int `json:"sports_with_schedules"`
		TotalScheduleEntries int `json:"total_schedule_entries"`
	} `json:"system_stats"`
	MonthlyRegistrations []MonthCount `json:"monthly_registrations"`
}

type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// Dashboard runs the aggregate queries behind the admin statistics endpoint.
func (r *StatsRepo) Dashboard(ctx context.Context) (DashboardStats, error) {
	var s DashboardStats

	counts := []struct {
		dst   *int
		query string
	}{
		{&s.TotalAdmins, `SELECT COUNT(*) FROM users WHERE role = 'admin'`},
		{&s.ActiveAdmins, `SELECT COUNT(*) FROM users WHERE role = 'admin' AND is_active = 1`},
		{&s.TotalMembers, `SELECT COUNT(*) FROM users WHERE role = 'member'`},
		{&s.ActiveMembers, `SELECT COUNT(*) FROM users WHERE role = 'member' AND is_active = 1`},
		{&s.TotalSports, `SELECT COUNT(*) FROM sports WHERE is_active = 1`},
		{&s.TotalSessions, `SELECT COUNT(*) FROM schedules WHERE is_active = 1`},
		{&s.RecentRegistrations, `SELECT COUNT(*) FROM users
			WHERE role = 'member' AND created_at >= date('now', '-30 days')`},
	}
	for _, c := range counts {
		if err := r.DB.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return DashboardStats{}, err
		}
	}

	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT sport_id), COUNT(*) FROM schedules WHERE is_active = 1`).
		Scan(&s.SystemStats.SportsWithSchedules, &s.SystemStats.TotalScheduleEntries); err != nil {
		return DashboardStats{}, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT strftime('%Y-%m', created_at) AS month, COUNT(*)
		 FROM users
		 WHERE created_at >= date('now', '-12 months')
		 GROUP BY strftime('%Y-%m', created_at)
		 ORDER BY month`)
	if err != nil {
		return DashboardStats{}, err
	}
	defer rows.Close()

	s.MonthlyRegistrations = []MonthCount{}
	for rows.Next() {
		var mc MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return DashboardStats{}, err
		}
		s.MonthlyRegistrations = append(s.MonthlyRegistrations, mc)
	}
	return s, rows.Err()
}
