package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Schedule mirrors the 'schedules' table: one recurring weekly session.
type Schedule struct {
	ID              int64
	SportID         int64
	DayOfWeek       string
	StartTime       string
	EndTime         string
	AgeGroup        string
	MaxParticipants int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ScheduleEntry is a schedule row joined with its sport, as served by the
// schedule listings.
type ScheduleEntry struct {
	Schedule
	SportName        string
	SportDescription sql.NullString
}

type ScheduleRepo struct{ DB *sql.DB }

func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{DB: db} }

// weekdayOrder sorts Swedish day names Monday-first. The week must come out
// Måndag..Söndag regardless of collation, so the ordering is spelled out
// instead of sorting the text column.
const weekdayOrder = `CASE s.day_of_week
	WHEN 'Måndag' THEN 1
	WHEN 'Tisdag' THEN 2
	WHEN 'Onsdag' THEN 3
	WHEN 'Torsdag' THEN 4
	WHEN 'Fredag' THEN 5
	WHEN 'Lördag' THEN 6
	WHEN 'Söndag' THEN 7
END`

const scheduleJoin = `SELECT s.id, s.sport_id, s.day_of_week, s.start_time, s.end_time, s.age_group,
	s.max_participants, s.is_active, s.created_at, s.updated_at,
	sp.name, sp.description
	FROM schedules s JOIN sports sp ON s.sport_id = sp.id`

// ListActive returns active entries of active sports in weekday order, then
// by start time.
func (r *ScheduleRepo) ListActive(ctx context.Context) ([]ScheduleEntry, error) {
	return r.listJoined(ctx, scheduleJoin+
		` WHERE s.is_active = 1 AND sp.is_active = 1 ORDER BY `+weekdayOrder+`, s.start_time`)
}

// ListActiveBySport filters the active listing by sport name,
// case-insensitive exact match.
func (r *ScheduleRepo) ListActiveBySport(ctx context.Context, sportName string) ([]ScheduleEntry, error) {
	return r.listJoined(ctx, scheduleJoin+
		` WHERE s.is_active = 1 AND sp.is_active = 1 AND LOWER(sp.name) = LOWER(?)
		 ORDER BY `+weekdayOrder+`, s.start_time`, sportName)
}

// ListAll returns every entry including inactive ones, for the admin view,
// in the same weekday order.
func (r *ScheduleRepo) ListAll(ctx context.Context) ([]ScheduleEntry, error) {
	return r.listJoined(ctx, scheduleJoin+` ORDER BY `+weekdayOrder+`, s.start_time`)
}

func (r *ScheduleRepo) listJoined(ctx context.Context, query string, args ...any) ([]ScheduleEntry, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScheduleEntry
	for rows.Next() {
		var e ScheduleEntry
		if err := rows.Scan(&e.ID, &e.SportID, &e.DayOfWeek, &e.StartTime, &e.EndTime,
			&e.AgeGroup, &e.MaxParticipants, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
			&e.SportName, &e.SportDescription); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create inserts a schedule entry and returns its id.
func (r *ScheduleRepo) Create(ctx context.Context, sportID int64, day, start, end, ageGroup string, maxParticipants int) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO schedules (sport_id, day_of_week, start_time, end_time, age_group, max_participants)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sportID, day, start, end, ageGroup, maxParticipants)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites a schedule entry.
func (r *ScheduleRepo) Update(ctx context.Context, id, sportID int64, day, start, end, ageGroup string, maxParticipants int, isActive bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE schedules SET sport_id = ?, day_of_week = ?, start_time = ?, end_time = ?,
			age_group = ?, max_participants = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		sportID, day, start, end, ageGroup, maxParticipants, isActive, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a schedule entry.
func (r *ScheduleRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetByID fetches one schedule row without the sport join.
func (r *ScheduleRepo) GetByID(ctx context.Context, id int64) (Schedule, error) {
	var s Schedule
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, sport_id, day_of_week, start_time, end_time, age_group,
			max_participants, is_active, created_at, updated_at
		 FROM schedules WHERE id = ? LIMIT 1`, id).
		Scan(&s.ID, &s.SportID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.AgeGroup,
			&s.MaxParticipants, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Schedule{}, ErrNotFound
	}
	return s, err
}
