package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// Sport mirrors the 'sports' table. AgeGroups holds the raw JSON array text
// as stored; use AgeGroupList to decode it.
type Sport struct {
	ID          int64
	Name        string
	Description sql.NullString
	ImagePath   sql.NullString
	AgeGroups   sql.NullString
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AgeGroupList decodes the stored age-group JSON. Malformed or empty values
// decode to an empty list rather than an error; the labels are display-only.
func (s Sport) AgeGroupList() []string {
	out := []string{}
	if s.AgeGroups.Valid {
		_ = json.Unmarshal([]byte(s.AgeGroups.String), &out)
	}
	return out
}

type SportRepo struct{ DB *sql.DB }

func NewSportRepo(db *sql.DB) *SportRepo { return &SportRepo{DB: db} }

const sportColumns = `id, name, description, image_path, age_groups, is_active, created_at, updated_at`

// ListActive returns active sports ordered by name, for the public site.
func (r *SportRepo) ListActive(ctx context.Context) ([]Sport, error) {
	return r.list(ctx, `SELECT `+sportColumns+` FROM sports WHERE is_active = 1 ORDER BY name`)
}

// ListAll returns every sport including inactive ones, for the admin view.
func (r *SportRepo) ListAll(ctx context.Context) ([]Sport, error) {
	return r.list(ctx, `SELECT `+sportColumns+` FROM sports ORDER BY name`)
}

func (r *SportRepo) list(ctx context.Context, query string) ([]Sport, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sport
	for rows.Next() {
		var s Sport
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.ImagePath, &s.AgeGroups,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches one sport.
func (r *SportRepo) GetByID(ctx context.Context, id int64) (Sport, error) {
	var s Sport
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+sportColumns+` FROM sports WHERE id = ? LIMIT 1`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.ImagePath, &s.AgeGroups,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Sport{}, ErrNotFound
	}
	return s, err
}

// GetActiveByID fetches one sport and fails with ErrNotFound when the sport
// is missing or inactive. Schedule mutations use it to reject entries that
// would reference a retired sport.
func (r *SportRepo) GetActiveByID(ctx context.Context, id int64) (Sport, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return Sport{}, err
	}
	if !s.IsActive {
		return Sport{}, ErrNotFound
	}
	return s, nil
}

// Create inserts a sport; a duplicate name surfaces as ErrDuplicate.
func (r *SportRepo) Create(ctx context.Context, name, description, imagePath string, ageGroups []string) (int64, error) {
	groups, err := json.Marshal(ageGroups)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO sports (name, description, image_path, age_groups) VALUES (?, ?, ?, ?)`,
		name, description, nullable(imagePath), string(groups))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites the editable sport fields.
func (r *SportRepo) Update(ctx context.Context, id int64, name, description, imagePath string, ageGroups []string, isActive bool) error {
	groups, err := json.Marshal(ageGroups)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sports SET name = ?, description = ?, image_path = ?, age_groups = ?, is_active = ?,
			updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, description, nullable(imagePath), string(groups), isActive, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireRow(res)
}

// Delete removes a sport. It fails with ErrConflict while active schedule
// entries still reference the sport, and ErrNotFound when the id is unknown.
func (r *SportRepo) Delete(ctx context.Context, id int64) error {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schedules WHERE sport_id = ? AND is_active = 1`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sports WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
