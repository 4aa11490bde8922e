package photos

import "time"

// Photo is a Google Photos item placed in a collection. Only metadata and
// the expiring base URL are kept; (UserID, ExternalID) is unique.
type Photo struct {
	ID           string
	UserID       string
	CollectionID string
	ExternalID   string
	BaseURL      string
	Caption      string
	Hidden       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
