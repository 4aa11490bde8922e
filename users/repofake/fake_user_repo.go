package fakeuserrepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/jrsteele09/photo-wall/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users     map[string]users.User
	googleIDs map[string]string // google subject to user id
	lock      sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:     make(map[string]users.User),
		googleIDs: make(map[string]string),
	}
}

func (ur *FakeUserRepo) UpsertByGoogleID(_ context.Context, user *users.User) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	now := time.Now()
	if id, ok := ur.googleIDs[user.GoogleUserID]; ok {
		existing := ur.users[id]
		existing.Email = user.Email
		existing.Name = user.Name
		existing.UpdatedAt = now
		ur.users[id] = existing
		return &existing, nil
	}

	stored := *user
	stored.ID = uuid.New().String()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	ur.users[stored.ID] = stored
	ur.googleIDs[stored.GoogleUserID] = stored.ID
	return &stored, nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, ID string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[ID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

// Count returns the number of stored users.
func (ur *FakeUserRepo) Count() int {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	return len(ur.users)
}
