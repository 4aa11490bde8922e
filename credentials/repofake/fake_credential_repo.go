package credentialrepofake

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/photo-wall/credentials"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
)

var _ credentials.Repo = (*FakeCredentialRepo)(nil)

type FakeCredentialRepo struct {
	credentials map[string]credentials.Credential // user ID to credential
	lock        sync.RWMutex
}

func NewFakeCredentialRepo() *FakeCredentialRepo {
	return &FakeCredentialRepo{
		credentials: make(map[string]credentials.Credential),
	}
}

func (cr *FakeCredentialRepo) Get(_ context.Context, userID string) (*credentials.Credential, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	c, ok := cr.credentials[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (cr *FakeCredentialRepo) Put(_ context.Context, credential *credentials.Credential) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	cr.credentials[credential.UserID] = *credential
	return nil
}

func (cr *FakeCredentialRepo) UpdateAccessToken(_ context.Context, userID, accessToken string, expiresAt time.Time) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	c, ok := cr.credentials[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	c.AccessToken = accessToken
	c.ExpiresAt = expiresAt
	cr.credentials[userID] = c
	return nil
}
