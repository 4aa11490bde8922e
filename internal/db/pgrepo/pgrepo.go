// Package pgrepo implements the service's repositories on Postgres.
package pgrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
)

// Store bundles every repository over one connection pool.
type Store struct {
	db *sql.DB

	Users       *Users
	Credentials *Credentials
	Sessions    *Sessions
	Collections *Collections
	Photos      *Photos
	Picker      *PickerSessions
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:          db,
		Users:       &Users{db: db},
		Credentials: &Credentials{db: db},
		Sessions:    &Sessions{db: db},
		Collections: &Collections{db: db},
		Photos:      &Photos{db: db},
		Picker:      &PickerSessions{db: db},
	}
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return apperrors.Wrapf(err, format, args...)
}

// validID reports whether id can be compared against a uuid column. Ids
// arrive from URLs, so a malformed one is simply not found.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
