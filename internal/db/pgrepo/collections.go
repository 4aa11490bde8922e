package pgrepo

import (
	"context"
	"database/sql"

	"github.com/jrsteele09/photo-wall/collections"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
)

type Collections struct {
	db *sql.DB
}

var _ collections.Repo = (*Collections)(nil)

const collectionColumns = `id, user_id, name, COALESCE(share_token, ''), layout, created_at`

func scanCollection(row *sql.Row) (*collections.Collection, error) {
	var c collections.Collection
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.ShareToken, &c.Layout, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Collections) Get(ctx context.Context, ID string) (*collections.Collection, error) {
	if !validID(ID) {
		return nil, apperrors.ErrNotFound
	}
	c, err := scanCollection(r.db.QueryRowContext(ctx, `SELECT `+collectionColumns+` FROM collections WHERE id = $1`, ID))
	if err != nil {
		return nil, notFoundOr(err, "get collection %s", ID)
	}
	return c, nil
}

func (r *Collections) GetByShareToken(ctx context.Context, shareToken string) (*collections.Collection, error) {
	if shareToken == "" {
		return nil, apperrors.ErrNotFound
	}
	c, err := scanCollection(r.db.QueryRowContext(ctx, `SELECT `+collectionColumns+` FROM collections WHERE share_token = $1`, shareToken))
	if err != nil {
		return nil, notFoundOr(err, "get shared collection")
	}
	return c, nil
}

func (r *Collections) GetMember(ctx context.Context, collectionID, userID string) (*collections.Member, error) {
	if !validID(collectionID) || !validID(userID) {
		return nil, apperrors.ErrNotFound
	}
	var m collections.Member
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, collection_id, user_id, email, role, created_at
		 FROM collection_members WHERE collection_id = $1 AND user_id = $2
		 ORDER BY created_at LIMIT 1`, collectionID, userID).
		Scan(&m.ID, &m.CollectionID, &m.UserID, &m.Email, &role, &m.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err, "get member of collection %s", collectionID)
	}
	m.Role = collections.Role(role)
	return &m, nil
}

func (r *Collections) BindPendingMembers(ctx context.Context, email, userID string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE collection_members SET user_id = $2 WHERE lower(email) = lower($1) AND user_id IS NULL`,
		email, userID)
	if err != nil {
		return 0, apperrors.Wrapf(err, "bind pending members for %s", userID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrapf(err, "bind pending members for %s", userID)
	}
	return int(n), nil
}
