// Package repository implements the data access layer on top of
// database/sql. Sentinel errors defined here let handlers map failures to
// HTTP statuses without inspecting driver internals: ErrNotFound becomes
// 404, ErrDuplicate and ErrConflict become 409.
package repository

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a lookup or a targeted update matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint (email, personnummer, sport name, transaction id).
var ErrDuplicate = errors.New("duplicate")

// ErrConflict is returned when an operation cannot proceed because of
// dependent records, such as deleting a sport that still has active
// schedule entries.
var ErrConflict = errors.New("conflict")

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
