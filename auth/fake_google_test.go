package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"golang.org/x/oauth2"
)

const (
	testCode         = "good-code"
	testSubject      = "google-sub-1"
	testEmail        = "Jane.Doe@Example.com"
	testName         = "Jane Doe"
	testRefreshToken = "refresh-1"
)

// fakeGoogle serves the token, tokeninfo and userinfo endpoints.
type fakeGoogle struct {
	srv *httptest.Server

	mu            sync.Mutex
	scope         string
	refreshToken  string
	refreshCalls  int
	revokedTokens map[string]bool
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	t.Helper()

	g := &fakeGoogle{
		scope:         strings.Join([]string{"openid", "email", "https://www.googleapis.com/auth/photospicker.mediaitems.readonly", "https://www.googleapis.com/auth/photoslibrary.readonly"}, " "),
		refreshToken:  testRefreshToken,
		revokedTokens: map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", g.token)
	mux.HandleFunc("GET /tokeninfo", g.tokenInfo)
	mux.HandleFunc("GET /userinfo", g.userInfo)
	g.srv = httptest.NewServer(mux)
	t.Cleanup(g.srv.Close)
	return g
}

func (g *fakeGoogle) endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   g.srv.URL + "/auth",
		TokenURL:  g.srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

func (g *fakeGoogle) token(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	_ = r.ParseForm()
	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		if r.PostForm.Get("code") != testCode {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_grant"})
			return
		}
		resp := map[string]any{"access_token": "access-1", "token_type": "Bearer", "expires_in": 3600}
		if g.refreshToken != "" {
			resp["refresh_token"] = g.refreshToken
		}
		writeJSON(w, http.StatusOK, resp)
	case "refresh_token":
		g.refreshCalls++
		if g.revokedTokens[r.PostForm.Get("refresh_token")] {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_grant", "error_description": "Token has been expired or revoked."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "access-2", "token_type": "Bearer", "expires_in": 3600})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unsupported_grant_type"})
	}
}

func (g *fakeGoogle) tokenInfo(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if r.URL.Query().Get("access_token") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scope": g.scope, "expires_in": "3599"})
}

func (g *fakeGoogle) userInfo(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sub": testSubject, "email": testEmail, "name": testName})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
