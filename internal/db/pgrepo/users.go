package pgrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/jrsteele09/photo-wall/users"
)

type Users struct {
	db *sql.DB
}

var _ users.UserRepo = (*Users)(nil)

const upsertUserSQL = `
INSERT INTO users (id, google_user_id, email, name, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (google_user_id) DO UPDATE
SET email = EXCLUDED.email, name = EXCLUDED.name, updated_at = now()
RETURNING id, google_user_id, email, name, created_at, updated_at`

func (r *Users) UpsertByGoogleID(ctx context.Context, user *users.User) (*users.User, error) {
	var out users.User
	err := r.db.QueryRowContext(ctx, upsertUserSQL, uuid.New().String(), user.GoogleUserID, user.Email, user.Name).
		Scan(&out.ID, &out.GoogleUserID, &out.Email, &out.Name, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, apperrors.Wrapf(err, "upsert user %s", user.GoogleUserID)
	}
	return &out, nil
}

func (r *Users) GetByID(ctx context.Context, ID string) (*users.User, error) {
	if !validID(ID) {
		return nil, apperrors.ErrNotFound
	}
	var out users.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, google_user_id, email, name, created_at, updated_at FROM users WHERE id = $1`, ID).
		Scan(&out.ID, &out.GoogleUserID, &out.Email, &out.Name, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err, "get user %s", ID)
	}
	return &out, nil
}
