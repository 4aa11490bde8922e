package pgrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/jrsteele09/photo-wall/photos"
)

type Photos struct {
	db *sql.DB
}

var _ photos.Repo = (*Photos)(nil)

const upsertPhotoSQL = `
INSERT INTO photos (id, user_id, collection_id, google_media_item_id, base_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
ON CONFLICT (user_id, google_media_item_id) DO UPDATE
SET collection_id = EXCLUDED.collection_id, base_url = EXCLUDED.base_url, updated_at = now()`

// UpsertMany writes every photo in one transaction.
func (r *Photos) UpsertMany(ctx context.Context, items []photos.Photo) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrapf(err, "begin photo upsert")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertPhotoSQL)
	if err != nil {
		return apperrors.Wrapf(err, "prepare photo upsert")
	}
	defer stmt.Close()

	for _, p := range items {
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), p.UserID, nullString(p.CollectionID), p.ExternalID, p.BaseURL); err != nil {
			return apperrors.Wrapf(err, "upsert photo %s", p.ExternalID)
		}
	}
	if err := tx.Commit(); err != nil {
		return apperrors.Wrapf(err, "commit photo upsert")
	}
	return nil
}

func (r *Photos) Get(ctx context.Context, ID string) (*photos.Photo, error) {
	if !validID(ID) {
		return nil, apperrors.ErrNotFound
	}
	var p photos.Photo
	var collectionID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, collection_id, google_media_item_id, base_url, caption, is_hidden, created_at, updated_at
		 FROM photos WHERE id = $1`, ID).
		Scan(&p.ID, &p.UserID, &collectionID, &p.ExternalID, &p.BaseURL, &p.Caption, &p.Hidden, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err, "get photo %s", ID)
	}
	p.CollectionID = collectionID.String
	return &p, nil
}

func (r *Photos) UpdateBaseURL(ctx context.Context, ID, baseURL string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE photos SET base_url = $2, updated_at = now() WHERE id = $1`, ID, baseURL)
	if err != nil {
		return apperrors.Wrapf(err, "update base url of photo %s", ID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
