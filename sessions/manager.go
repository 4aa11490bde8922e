package sessions

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
	"github.com/rs/zerolog"
)

const (
	// CookieName is the browser cookie carrying the session token
	CookieName = "pwo_session"

	tokenBytes = 32
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Manager issues, validates and revokes session tokens. Tokens are
// independent of the user's OAuth grant.
type Manager struct {
	repo   Repo
	ttl    time.Duration
	secure bool
	logger zerolog.Logger
}

// NewManager creates a session manager. secure controls the cookie Secure
// flag and should be true in production only.
func NewManager(repo Repo, ttl time.Duration, secure bool, logger zerolog.Logger) *Manager {
	return &Manager{
		repo:   repo,
		ttl:    ttl,
		secure: secure,
		logger: logger,
	}
}

// Issue replaces every existing session of the user with a new one and
// returns its token.
func (m *Manager) Issue(ctx context.Context, userID string) (string, time.Time, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", time.Time{}, fmt.Errorf("generate session token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := m.repo.DeleteByUserID(ctx, userID); err != nil {
		return "", time.Time{}, apperrors.Wrapf(err, "delete previous sessions for user %s", userID)
	}

	now := NowTimeFunc()
	session := &Session{
		UserID:    userID,
		TokenHash: HashToken(token),
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}
	if err := m.repo.Create(ctx, session); err != nil {
		return "", time.Time{}, apperrors.Wrapf(err, "create session for user %s", userID)
	}
	return token, session.ExpiresAt, nil
}

// Validate returns the user owning token. Unknown, expired and empty tokens
// all yield errors.ErrUnauthorized.
func (m *Manager) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperrors.ErrUnauthorized
	}

	session, err := m.repo.GetByTokenHash(ctx, HashToken(token))
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", apperrors.ErrUnauthorized
	}
	if err != nil {
		m.logger.Warn().Err(err).Msg("session lookup failed")
		return "", fmt.Errorf("%w: lookup session: %w", apperrors.ErrUnauthorized, err)
	}
	if session.Expired(NowTimeFunc()) {
		return "", apperrors.ErrUnauthorized
	}
	return session.UserID, nil
}

// Revoke deletes the session matching token and clears the cookie whether
// or not a session existed.
func (m *Manager) Revoke(ctx context.Context, w http.ResponseWriter, token string) error {
	m.ClearCookie(w)
	if token == "" {
		return nil
	}
	if err := m.repo.DeleteByTokenHash(ctx, HashToken(token)); err != nil {
		return apperrors.Wrapf(err, "delete session")
	}
	return nil
}

func (m *Manager) WriteCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
		Expires:  expiresAt,
	})
}

func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// TokenFromRequest returns the session token presented by the browser, or "".
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// HashToken is the storage form of a session token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
