package pgrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/jrsteele09/photo-wall/picker"
)

type PickerSessions struct {
	db *sql.DB
}

var _ picker.Repo = (*PickerSessions)(nil)

func (r *PickerSessions) Create(ctx context.Context, record *picker.Record) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO picker_sessions (id, user_id, collection_id, session_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		record.ID, record.UserID, record.CollectionID, record.SessionID, record.CreatedAt)
	if err != nil {
		return apperrors.Wrapf(err, "create picker session %s", record.SessionID)
	}
	return nil
}

func (r *PickerSessions) Find(ctx context.Context, userID, collectionID, sessionID string) (*picker.Record, error) {
	if !validID(userID) || !validID(collectionID) {
		return nil, apperrors.ErrNotFound
	}
	rec := picker.Record{UserID: userID, CollectionID: collectionID, SessionID: sessionID}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM picker_sessions
		 WHERE user_id = $1 AND collection_id = $2 AND session_id = $3
		 ORDER BY created_at DESC LIMIT 1`, userID, collectionID, sessionID).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err, "find picker session %s", sessionID)
	}
	return &rec, nil
}

func (r *PickerSessions) Delete(ctx context.Context, ID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM picker_sessions WHERE id = $1`, ID); err != nil {
		return apperrors.Wrapf(err, "delete picker session record %s", ID)
	}
	return nil
}

func (r *PickerSessions) DeleteOlderThan(ctx context.Context, userID string, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM picker_sessions WHERE user_id = $1 AND created_at < $2`, userID, cutoff)
	if err != nil {
		return 0, apperrors.Wrapf(err, "expire picker sessions of %s", userID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrapf(err, "expire picker sessions of %s", userID)
	}
	return int(n), nil
}
