package pgrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/jrsteele09/photo-wall/credentials"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
)

type Credentials struct {
	db *sql.DB
}

var _ credentials.Repo = (*Credentials)(nil)

func (r *Credentials) Get(ctx context.Context, userID string) (*credentials.Credential, error) {
	if !validID(userID) {
		return nil, apperrors.ErrNotFound
	}
	c := credentials.Credential{UserID: userID}
	err := r.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token, expires_at FROM auth_tokens WHERE user_id = $1`, userID).
		Scan(&c.AccessToken, &c.RefreshToken, &c.ExpiresAt)
	if err != nil {
		return nil, notFoundOr(err, "get credentials of %s", userID)
	}
	return &c, nil
}

const putCredentialSQL = `
INSERT INTO auth_tokens (user_id, access_token, refresh_token, expires_at, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (user_id) DO UPDATE
SET access_token = EXCLUDED.access_token,
    refresh_token = EXCLUDED.refresh_token,
    expires_at = EXCLUDED.expires_at,
    updated_at = now()`

func (r *Credentials) Put(ctx context.Context, c *credentials.Credential) error {
	if _, err := r.db.ExecContext(ctx, putCredentialSQL, c.UserID, c.AccessToken, c.RefreshToken, c.ExpiresAt); err != nil {
		return apperrors.Wrapf(err, "put credentials of %s", c.UserID)
	}
	return nil
}

func (r *Credentials) UpdateAccessToken(ctx context.Context, userID, accessToken string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE auth_tokens SET access_token = $2, expires_at = $3, updated_at = now() WHERE user_id = $1`,
		userID, accessToken, expiresAt)
	if err != nil {
		return apperrors.Wrapf(err, "update access token of %s", userID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
