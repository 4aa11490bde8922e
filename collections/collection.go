package collections

import "time"

// Role is a user's standing on one collection.
type Role string

const (
	RoleNone   Role = ""
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

type Collection struct {
	ID         string
	OwnerID    string
	Name       string
	ShareToken string
	Layout     string
	CreatedAt  time.Time
}

// Member is an invitation to a collection. UserID stays empty until the
// invited email signs in for the first time.
type Member struct {
	ID           string
	CollectionID string
	UserID       string
	Email        string
	Role         Role
	CreatedAt    time.Time
}
