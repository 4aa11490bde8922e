package collections

import "context"

type Repo interface {
	Get(ctx context.Context, ID string) (*Collection, error)
	GetByShareToken(ctx context.Context, shareToken string) (*Collection, error)
	GetMember(ctx context.Context, collectionID, userID string) (*Member, error)

	// BindPendingMembers attaches userID to every unbound member row whose
	// email matches case-insensitively, returning how many rows were bound.
	BindPendingMembers(ctx context.Context, email, userID string) (int, error)
}
