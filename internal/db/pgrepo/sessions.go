package pgrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/jrsteele09/photo-wall/sessions"
)

type Sessions struct {
	db *sql.DB
}

var _ sessions.Repo = (*Sessions)(nil)

func (r *Sessions) Create(ctx context.Context, s *sessions.Session) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, session_token_hash, expires_at, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.UserID, s.TokenHash, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		return apperrors.Wrapf(err, "create session for %s", s.UserID)
	}
	return nil
}

func (r *Sessions) GetByTokenHash(ctx context.Context, tokenHash string) (*sessions.Session, error) {
	s := sessions.Session{TokenHash: tokenHash}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, expires_at, created_at FROM sessions WHERE session_token_hash = $1`, tokenHash).
		Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err, "get session")
	}
	return &s, nil
}

func (r *Sessions) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_token_hash = $1`, tokenHash); err != nil {
		return apperrors.Wrapf(err, "delete session")
	}
	return nil
}

func (r *Sessions) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return apperrors.Wrapf(err, "delete sessions of %s", userID)
	}
	return nil
}
