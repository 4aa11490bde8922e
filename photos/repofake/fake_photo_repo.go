package photorepofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/jrsteele09/photo-wall/photos"
)

var _ photos.Repo = (*FakePhotoRepo)(nil)

type FakePhotoRepo struct {
	photos  map[string]photos.Photo
	keys    map[[2]string]string // (user ID, external ID) to photo ID
	lock    sync.RWMutex
	failErr error
}

func NewFakePhotoRepo() *FakePhotoRepo {
	return &FakePhotoRepo{
		photos: make(map[string]photos.Photo),
		keys:   make(map[[2]string]string),
	}
}

// FailWith makes every subsequent UpsertMany return err.
func (pr *FakePhotoRepo) FailWith(err error) {
	pr.lock.Lock()
	defer pr.lock.Unlock()
	pr.failErr = err
}

func (pr *FakePhotoRepo) UpsertMany(_ context.Context, items []photos.Photo) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if pr.failErr != nil {
		return pr.failErr
	}

	now := time.Now()
	for _, p := range items {
		key := [2]string{p.UserID, p.ExternalID}
		if id, ok := pr.keys[key]; ok {
			existing := pr.photos[id]
			existing.CollectionID = p.CollectionID
			existing.BaseURL = p.BaseURL
			existing.UpdatedAt = now
			pr.photos[id] = existing
			continue
		}
		p.ID = uuid.New().String()
		p.CreatedAt = now
		p.UpdatedAt = now
		pr.photos[p.ID] = p
		pr.keys[key] = p.ID
	}
	return nil
}

func (pr *FakePhotoRepo) Get(_ context.Context, ID string) (*photos.Photo, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	p, ok := pr.photos[ID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (pr *FakePhotoRepo) UpdateBaseURL(_ context.Context, ID, baseURL string) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	p, ok := pr.photos[ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	p.BaseURL = baseURL
	pr.photos[ID] = p
	return nil
}

// Add seeds a photo as-is.
func (pr *FakePhotoRepo) Add(p photos.Photo) {
	pr.lock.Lock()
	defer pr.lock.Unlock()
	pr.photos[p.ID] = p
	pr.keys[[2]string{p.UserID, p.ExternalID}] = p.ID
}

// List returns every stored photo ordered by external ID.
func (pr *FakePhotoRepo) List() []photos.Photo {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	out := make([]photos.Photo, 0, len(pr.photos))
	for _, p := range pr.photos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out
}
