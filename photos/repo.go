package photos

import "context"

type Repo interface {
	// UpsertMany inserts photos or, for an existing (UserID, ExternalID),
	// updates CollectionID and BaseURL in place. Captions are preserved.
	UpsertMany(ctx context.Context, photos []Photo) error
	Get(ctx context.Context, ID string) (*Photo, error)
	UpdateBaseURL(ctx context.Context, ID, baseURL string) error
}
