package sessions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/jrsteele09/photo-wall/sessions"
	fakesessionrepo "github.com/jrsteele09/photo-wall/sessions/repofakes"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testUserID = "user-1"
	sessionTTL = 7 * 24 * time.Hour
)

type testFixture struct {
	now     time.Time
	repo    *fakesessionrepo.FakeSessionRepo
	manager *sessions.Manager
}

func setupTestFixture(t *testing.T, secure bool) *testFixture {
	t.Helper()

	f := &testFixture{
		now:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		repo: fakesessionrepo.NewFakeSessionRepo(),
	}
	sessions.NowTimeFunc = func() time.Time { return f.now }
	t.Cleanup(func() { sessions.NowTimeFunc = time.Now })

	f.manager = sessions.NewManager(f.repo, sessionTTL, secure, zerolog.Nop())
	return f
}

func TestIssueAndValidate(t *testing.T) {
	f := setupTestFixture(t, false)
	ctx := context.Background()

	token, expiresAt, err := f.manager.Issue(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, token, 64)
	require.Equal(t, f.now.Add(sessionTTL), expiresAt)

	userID, err := f.manager.Validate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, testUserID, userID)

	// The raw token is never what gets stored
	_, err = f.repo.GetByTokenHash(ctx, token)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIssue_ReplacesPreviousSession(t *testing.T) {
	f := setupTestFixture(t, false)
	ctx := context.Background()

	first, _, err := f.manager.Issue(ctx, testUserID)
	require.NoError(t, err)
	second, _, err := f.manager.Issue(ctx, testUserID)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	require.Equal(t, 1, f.repo.CountForUser(testUserID))
	_, err = f.manager.Validate(ctx, first)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestValidate_ExpiredAndUnknownAreUnauthorized(t *testing.T) {
	f := setupTestFixture(t, false)
	ctx := context.Background()

	token, _, err := f.manager.Issue(ctx, testUserID)
	require.NoError(t, err)

	f.now = f.now.Add(sessionTTL)
	_, err = f.manager.Validate(ctx, token)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = f.manager.Validate(ctx, "does-not-exist")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = f.manager.Validate(ctx, "")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRevoke_IsIdempotent(t *testing.T) {
	f := setupTestFixture(t, false)
	ctx := context.Background()

	token, _, err := f.manager.Issue(ctx, testUserID)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		require.NoError(t, f.manager.Revoke(ctx, rec, token))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, sessions.CookieName, cookies[0].Name)
		require.Equal(t, -1, cookies[0].MaxAge)
	}

	_, err = f.manager.Validate(ctx, token)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestWriteCookie_Attributes(t *testing.T) {
	for _, secure := range []bool{false, true} {
		f := setupTestFixture(t, secure)
		rec := httptest.NewRecorder()
		f.manager.WriteCookie(rec, "tok", f.now.Add(sessionTTL))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		require.Equal(t, "tok", c.Value)
		require.Equal(t, "/", c.Path)
		require.True(t, c.HttpOnly)
		require.Equal(t, secure, c.Secure)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
		require.Equal(t, int(sessionTTL.Seconds()), c.MaxAge)
	}
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Empty(t, sessions.TokenFromRequest(r))

	r.AddCookie(&http.Cookie{Name: sessions.CookieName, Value: "abc"})
	require.Equal(t, "abc", sessions.TokenFromRequest(r))
}
