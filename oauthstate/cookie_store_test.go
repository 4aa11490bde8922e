package oauthstate_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/photo-wall/oauthstate"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	stateTTL   = 10 * time.Minute
)

type testFixture struct {
	now   time.Time
	store *oauthstate.CookieStore
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	oauthstate.NowTimeFunc = func() time.Time { return f.now }
	t.Cleanup(func() { oauthstate.NowTimeFunc = time.Now })

	store, err := oauthstate.NewCookieStore([]byte(testSecret), stateTTL, false)
	require.NoError(t, err)
	f.store = store
	return f
}

// issue returns the nonce and the cookie the browser would send back.
func (f *testFixture) issue(t *testing.T) (string, *http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	nonce, err := f.store.Issue(rec)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, oauthstate.CookieName, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	require.Equal(t, int(stateTTL.Seconds()), cookies[0].MaxAge)
	return nonce, cookies[0]
}

func callback(cookie *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/auth/callback", nil)
	if cookie != nil {
		r.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	return r
}

func requireCleared(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, oauthstate.CookieName, cookies[0].Name)
	require.Equal(t, -1, cookies[0].MaxAge)
}

func TestConsume_Match(t *testing.T) {
	f := setupTestFixture(t)
	nonce, cookie := f.issue(t)

	rec := httptest.NewRecorder()
	require.NoError(t, f.store.Consume(rec, callback(cookie), nonce))
	requireCleared(t, rec)
}

func TestConsume_Rejections(t *testing.T) {
	f := setupTestFixture(t)
	nonce, cookie := f.issue(t)

	oneOff := []byte(nonce)
	if oneOff[0] == 'A' {
		oneOff[0] = 'B'
	} else {
		oneOff[0] = 'A'
	}

	tests := []struct {
		name   string
		cookie *http.Cookie
		echoed string
		want   error
	}{
		{name: "no cookie", cookie: nil, echoed: nonce, want: oauthstate.ErrStateMissing},
		{name: "no echoed state", cookie: cookie, echoed: "", want: oauthstate.ErrStateMismatch},
		{name: "one character differs", cookie: cookie, echoed: string(oneOff), want: oauthstate.ErrStateMismatch},
		{name: "tampered cookie", cookie: &http.Cookie{Name: oauthstate.CookieName, Value: cookie.Value + "x"}, echoed: nonce, want: oauthstate.ErrStateMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			err := f.store.Consume(rec, callback(tt.cookie), tt.echoed)
			require.ErrorIs(t, err, tt.want)
			requireCleared(t, rec)
		})
	}
}

func TestConsume_Expired(t *testing.T) {
	f := setupTestFixture(t)
	nonce, cookie := f.issue(t)

	f.now = f.now.Add(stateTTL + time.Second)
	err := f.store.Consume(httptest.NewRecorder(), callback(cookie), nonce)
	require.ErrorIs(t, err, oauthstate.ErrStateMismatch)
}

func TestConsume_OtherSecretRejected(t *testing.T) {
	f := setupTestFixture(t)
	nonce, cookie := f.issue(t)

	other, err := oauthstate.NewCookieStore([]byte("another-secret-another-secret-xx"), stateTTL, false)
	require.NoError(t, err)
	err = other.Consume(httptest.NewRecorder(), callback(cookie), nonce)
	require.ErrorIs(t, err, oauthstate.ErrStateMismatch)
}
