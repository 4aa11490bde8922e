package users

import "time"

// User is a person who has signed in with Google at least once. The Google
// subject is the stable identity; email and name follow the latest login.
type User struct {
	ID           string    `json:"id,omitempty"`
	GoogleUserID string    `json:"google_user_id,omitempty"`
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}
