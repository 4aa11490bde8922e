package sessions

import "context"

// Repo defines the interface for session storage operations.
type Repo interface {
	// Create inserts a new session
	Create(ctx context.Context, session *Session) error

	// GetByTokenHash returns errors.ErrNotFound when no session matches
	GetByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	// DeleteByTokenHash is a no-op when nothing matches
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteByUserID removes every session of the user
	DeleteByUserID(ctx context.Context, userID string) error
}
