package collections_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/photo-wall/collections"
	collectionrepofake "github.com/jrsteele09/photo-wall/collections/repofake"
	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/stretchr/testify/require"
)

const (
	testCollectionID = "c1"
	testOwnerID      = "owner-1"
)

func setupRepo(t *testing.T) *collectionrepofake.FakeCollectionRepo {
	t.Helper()
	repo := collectionrepofake.NewFakeCollectionRepo()
	repo.AddCollection(collections.Collection{ID: testCollectionID, OwnerID: testOwnerID, Name: "Holiday"})
	repo.AddMember(collections.Member{CollectionID: testCollectionID, UserID: "editor-1", Email: "ed@example.com", Role: collections.RoleEditor})
	repo.AddMember(collections.Member{CollectionID: testCollectionID, UserID: "viewer-1", Email: "vi@example.com", Role: collections.RoleViewer})
	return repo
}

func TestResolveAccess(t *testing.T) {
	repo := setupRepo(t)

	tests := []struct {
		userID  string
		role    collections.Role
		canEdit bool
		canView bool
	}{
		{userID: testOwnerID, role: collections.RoleOwner, canEdit: true, canView: true},
		{userID: "editor-1", role: collections.RoleEditor, canEdit: true, canView: true},
		{userID: "viewer-1", role: collections.RoleViewer, canEdit: false, canView: true},
		{userID: "stranger", role: collections.RoleNone, canEdit: false, canView: false},
	}
	for _, tt := range tests {
		t.Run(tt.userID, func(t *testing.T) {
			access, err := collections.ResolveAccess(context.Background(), repo, tt.userID, testCollectionID)
			require.NoError(t, err)
			require.Equal(t, tt.role, access.Role)
			require.Equal(t, tt.canEdit, access.CanEdit())
			require.Equal(t, tt.canView, access.CanView())
		})
	}
}

func TestResolveAccess_MissingCollection(t *testing.T) {
	repo := setupRepo(t)

	_, err := collections.ResolveAccess(context.Background(), repo, testOwnerID, "nope")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBindPendingMembers_CaseInsensitive(t *testing.T) {
	repo := setupRepo(t)
	repo.AddMember(collections.Member{CollectionID: testCollectionID, Email: "New.Person@Example.com", Role: collections.RoleViewer})

	n, err := repo.BindPendingMembers(context.Background(), "new.person@example.COM", "user-9")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	access, err := collections.ResolveAccess(context.Background(), repo, "user-9", testCollectionID)
	require.NoError(t, err)
	require.Equal(t, collections.RoleViewer, access.Role)

	// Already bound rows are left alone
	n, err = repo.BindPendingMembers(context.Background(), "new.person@example.com", "user-10")
	require.NoError(t, err)
	require.Zero(t, n)
}
