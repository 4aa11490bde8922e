package picker

import (
	"context"
	"time"
)

// Record ties an external picker session to the user and collection that
// started it. It lives only while polling is in flight.
type Record struct {
	ID           string
	UserID       string
	CollectionID string
	SessionID    string
	CreatedAt    time.Time
}

type Repo interface {
	Create(ctx context.Context, record *Record) error

	// Find returns errors.ErrNotFound unless all three keys match one record
	Find(ctx context.Context, userID, collectionID, sessionID string) (*Record, error)

	Delete(ctx context.Context, ID string) error

	// DeleteOlderThan removes the user's records created before cutoff
	DeleteOlderThan(ctx context.Context, userID string, cutoff time.Time) (int, error)
}
