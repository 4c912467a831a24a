package repository

// The public site's footer and contact page are driven by two small display
// tables, social_media_links and contact_info. Both are ordered lists of
// typed records with an active flag; neither references any other entity.

import (
	"context"
	"database/sql"
	"time"
)

// SocialMediaLink mirrors the 'social_media_links' table.
type SocialMediaLink struct {
	ID           int64
	Platform     string
	URL          string
	IconClass    string
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ContactInfo mirrors the 'contact_info' table.
type ContactInfo struct {
	ID           int64
	Type         string
	Label        string
	Value        string
	Href         sql.NullString
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SocialMediaRepo struct{ DB *sql.DB }

func NewSocialMediaRepo(db *sql.DB) *SocialMediaRepo { return &SocialMediaRepo{DB: db} }

const socialColumns = `id, platform, url, icon_class, display_order, is_active, created_at, updated_at`

// List returns links in display order; activeOnly filters for the public
// endpoint while the admin view sees everything.
func (r *SocialMediaRepo) List(ctx context.Context, activeOnly bool) ([]SocialMediaLink, error) {
	query := `SELECT ` + socialColumns + ` FROM social_media_links`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY display_order, platform`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SocialMediaLink
	for rows.Next() {
		var l SocialMediaLink
		if err := rows.Scan(&l.ID, &l.Platform, &l.URL, &l.IconClass, &l.DisplayOrder,
			&l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *SocialMediaRepo) Create(ctx context.Context, platform, url, iconClass string, displayOrder int) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO social_media_links (platform, url, icon_class, display_order) VALUES (?, ?, ?, ?)`,
		platform, url, iconClass, displayOrder)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SocialMediaRepo) Update(ctx context.Context, id int64, platform, url, iconClass string, displayOrder int, isActive bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE social_media_links SET platform = ?, url = ?, icon_class = ?, display_order = ?,
			is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		platform, url, iconClass, displayOrder, isActive, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SocialMediaRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM social_media_links WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type ContactInfoRepo struct{ DB *sql.DB }

func NewContactInfoRepo(db *sql.DB) *ContactInfoRepo { return &ContactInfoRepo{DB: db} }

const contactColumns = `id, type, label, value, href, display_order, is_active, created_at, updated_at`

// List returns contact entries in display order; activeOnly filters for the
// public endpoint.
func (r *ContactInfoRepo) List(ctx context.Context, activeOnly bool) ([]ContactInfo, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_info`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY display_order, type`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ContactInfo
	for rows.Next() {
		var ci ContactInfo
		if err := rows.Scan(&ci.ID, &ci.Type, &ci.Label, &ci.Value, &ci.Href, &ci.DisplayOrder,
			&ci.IsActive, &ci.CreatedAt, &ci.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ci)
	}
	return out, rows.Err()
}

func (r *ContactInfoRepo) Create(ctx context.Context, typ, label, value, href string, displayOrder int) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO contact_info (type, label, value, href, display_order) VALUES (?, ?, ?, ?, ?)`,
		typ, label, value, nullable(href), displayOrder)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ContactInfoRepo) Update(ctx context.Context, id int64, typ, label, value, href string, displayOrder int, isActive bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE contact_info SET type = ?, label = ?, value = ?, href = ?, display_order = ?,
			is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		typ, label, value, nullable(href), displayOrder, isActive, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ContactInfoRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contact_info WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
