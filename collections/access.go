package collections

import (
	"context"
	"errors"

	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
)

// Access is the resolved role of one user on one collection.
type Access struct {
	Collection *Collection
	Role       Role
}

func (a *Access) CanEdit() bool {
	return a.Role == RoleOwner || a.Role == RoleEditor
}

func (a *Access) CanView() bool {
	return a.CanEdit() || a.Role == RoleViewer
}

// ResolveAccess returns errors.ErrNotFound when the collection does not
// exist. A user with no relationship gets RoleNone.
func ResolveAccess(ctx context.Context, repo Repo, userID, collectionID string) (*Access, error) {
	c, err := repo.Get(ctx, collectionID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "get collection %s", collectionID)
	}
	if c.OwnerID == userID {
		return &Access{Collection: c, Role: RoleOwner}, nil
	}

	m, err := repo.GetMember(ctx, collectionID, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return &Access{Collection: c, Role: RoleNone}, nil
	}
	if err != nil {
		return nil, apperrors.Wrapf(err, "get member of collection %s", collectionID)
	}
	return &Access{Collection: c, Role: m.Role}, nil
}
