package collectionrepofake

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/photo-wall/collections"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
)

var _ collections.Repo = (*FakeCollectionRepo)(nil)

type FakeCollectionRepo struct {
	collections map[string]collections.Collection
	members     map[string]collections.Member // member ID to member
	lock        sync.RWMutex
}

func NewFakeCollectionRepo() *FakeCollectionRepo {
	return &FakeCollectionRepo{
		collections: make(map[string]collections.Collection),
		members:     make(map[string]collections.Member),
	}
}

// AddCollection seeds a collection.
func (cr *FakeCollectionRepo) AddCollection(c collections.Collection) {
	cr.lock.Lock()
	defer cr.lock.Unlock()
	cr.collections[c.ID] = c
}

// AddMember seeds a member row.
func (cr *FakeCollectionRepo) AddMember(m collections.Member) {
	cr.lock.Lock()
	defer cr.lock.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cr.members[m.ID] = m
}

// Members returns the member rows of a collection.
func (cr *FakeCollectionRepo) Members(collectionID string) []collections.Member {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	var out []collections.Member
	for _, m := range cr.members {
		if m.CollectionID == collectionID {
			out = append(out, m)
		}
	}
	return out
}

func (cr *FakeCollectionRepo) Get(_ context.Context, ID string) (*collections.Collection, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	c, ok := cr.collections[ID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (cr *FakeCollectionRepo) GetByShareToken(_ context.Context, shareToken string) (*collections.Collection, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	for _, c := range cr.collections {
		if shareToken != "" && c.ShareToken == shareToken {
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (cr *FakeCollectionRepo) GetMember(_ context.Context, collectionID, userID string) (*collections.Member, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	for _, m := range cr.members {
		if m.CollectionID == collectionID && m.UserID != "" && m.UserID == userID {
			return &m, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (cr *FakeCollectionRepo) BindPendingMembers(_ context.Context, email, userID string) (int, error) {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	bound := 0
	for id, m := range cr.members {
		if m.UserID == "" && strings.EqualFold(m.Email, email) {
			m.UserID = userID
			cr.members[id] = m
			bound++
		}
	}
	return bound, nil
}
