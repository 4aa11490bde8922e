package fakesessionrepo

import (
	"context"
	"sync"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/jrsteele09/photo-wall/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

type FakeSessionRepo struct {
	sessions map[string]sessions.Session // token hash to session
	lock     sync.RWMutex
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		sessions: make(map[string]sessions.Session),
	}
}

func (sr *FakeSessionRepo) Create(_ context.Context, session *sessions.Session) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	sr.sessions[session.TokenHash] = *session
	return nil
}

func (sr *FakeSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	s, ok := sr.sessions[tokenHash]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

func (sr *FakeSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	delete(sr.sessions, tokenHash)
	return nil
}

func (sr *FakeSessionRepo) DeleteByUserID(_ context.Context, userID string) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	for hash, s := range sr.sessions {
		if s.UserID == userID {
			delete(sr.sessions, hash)
		}
	}
	return nil
}

// CountForUser returns how many sessions the user currently holds.
func (sr *FakeSessionRepo) CountForUser(userID string) int {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	n := 0
	for _, s := range sr.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n
}
