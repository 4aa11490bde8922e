package pickerrepofake

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/jrsteele09/photo-wall/picker"
)

var _ picker.Repo = (*FakePickerRepo)(nil)

type FakePickerRepo struct {
	records map[string]picker.Record
	lock    sync.RWMutex
}

func NewFakePickerRepo() *FakePickerRepo {
	return &FakePickerRepo{
		records: make(map[string]picker.Record),
	}
}

func (pr *FakePickerRepo) Create(_ context.Context, record *picker.Record) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	pr.records[record.ID] = *record
	return nil
}

func (pr *FakePickerRepo) Find(_ context.Context, userID, collectionID, sessionID string) (*picker.Record, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	for _, r := range pr.records {
		if r.UserID == userID && r.CollectionID == collectionID && r.SessionID == sessionID {
			return &r, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (pr *FakePickerRepo) Delete(_ context.Context, ID string) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	delete(pr.records, ID)
	return nil
}

func (pr *FakePickerRepo) DeleteOlderThan(_ context.Context, userID string, cutoff time.Time) (int, error) {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	n := 0
	for id, r := range pr.records {
		if r.UserID == userID && r.CreatedAt.Before(cutoff) {
			delete(pr.records, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of live records.
func (pr *FakePickerRepo) Len() int {
	pr.lock.RLock()
	defer pr.lock.RUnlock()
	return len(pr.records)
}
