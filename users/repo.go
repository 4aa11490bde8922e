package users

import "context"

type UserRepo interface {
	// UpsertByGoogleID inserts the user or updates email and name of the row
	// with the same GoogleUserID. The stored user, including its ID, is returned.
	UpsertByGoogleID(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, ID string) (*User, error)
}
