package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// User mirrors the 'users' table. Personnummer and the guardian fields are
// nullable: admins register without a personnummer and guardian contact
// is only collected for minors.
type User struct {
	ID             int64
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Phone          sql.NullString
	Address        sql.NullString
	Personnummer   sql.NullString
	ParentName     sql.NullString
	ParentLastname sql.NullString
	ParentPhone    sql.NullString
	Role           string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, email, password_hash, first_name, last_name, phone, address,
	personnummer, parent_name, parent_lastname, parent_phone, role, is_active, created_at, updated_at`

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.Address, &u.Personnummer, &u.ParentName, &u.ParentLastname,
		&u.ParentPhone, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// NewUser carries the fields accepted at registration time.
type NewUser struct {
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Phone          string
	Address        string
	Personnummer   string
	ParentName     string
	ParentLastname string
	ParentPhone    string
	Role           string
}

// Create inserts a user and returns its id. A unique-constraint violation
// on email or personnummer surfaces as ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, nu NewUser) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, phone, address,
			personnummer, parent_name, parent_lastname, parent_phone, role)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.ToLower(strings.TrimSpace(nu.Email)), nu.PasswordHash, nu.FirstName, nu.LastName,
		nullable(nu.Phone), nullable(nu.Address), nullable(nu.Personnummer),
		nullable(nu.ParentName), nullable(nu.ParentLastname), nullable(nu.ParentPhone), nu.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id))
}

// EmailExists reports whether any user already uses the email.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n)
	return n > 0, err
}

// PersonnummerExists reports whether any user already uses the personnummer.
func (r *UserRepo) PersonnummerExists(ctx context.Context, pnr string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE personnummer = ?`, pnr).Scan(&n)
	return n > 0, err
}

// UpdateProfile changes the caller-editable profile fields.
func (r *UserRepo) UpdateProfile(ctx context.Context, id int64, firstName, lastName, phone, address string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, phone = ?, address = ?,
			updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		firstName, lastName, phone, address, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ListByRole returns users of one role, newest first.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE role = ? ORDER BY created_at DESC`, role)
}

// ListAll returns every account, newest first.
func (r *UserRepo) ListAll(ctx context.Context) ([]User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
}

func (r *UserRepo) list(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.Phone, &u.Address, &u.Personnummer, &u.ParentName, &u.ParentLastname,
			&u.ParentPhone, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SetActive flips the active flag of any account.
func (r *UserRepo) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetActiveByRole flips the active flag but only when the account has the
// given role; used by the admins status endpoint so it cannot touch members.
func (r *UserRepo) SetActiveByRole(ctx context.Context, id int64, active bool, role string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND role = ?`,
		active, id, role)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// nullable maps "" to NULL so unique columns like personnummer do not
// collide on empty strings.
func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// requireRow converts a zero-row update into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
