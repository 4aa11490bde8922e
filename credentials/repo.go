package credentials

import (
	"context"
	"time"
)

// Credential is the OAuth grant held for one user. There is at most one per
// user; Put replaces whatever was there.
type Credential struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Repo persists credentials. Get returns errors.ErrNotFound when the user has
// none.
type Repo interface {
	Get(ctx context.Context, userID string) (*Credential, error)
	Put(ctx context.Context, credential *Credential) error
	UpdateAccessToken(ctx context.Context, userID, accessToken string, expiresAt time.Time) error
}
