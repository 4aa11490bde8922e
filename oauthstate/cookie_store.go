package oauthstate

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	// CookieName is the browser cookie carrying the signed nonce
	CookieName = "pwo_oauth_state"

	nonceBytes = 32
	keyInfo    = "photo-wall oauth state v1"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// CookieStore keeps the nonce in an HMAC-signed JWT cookie, so nothing is
// stored server-side. The token's exp claim enforces the TTL even if the
// browser ignores the cookie lifetime.
type CookieStore struct {
	key    []byte
	ttl    time.Duration
	secure bool
}

var _ Store = (*CookieStore)(nil)

// NewCookieStore derives the signing key from secret with HKDF-SHA256.
func NewCookieStore(secret []byte, ttl time.Duration, secure bool) (*CookieStore, error) {
	if len(secret) == 0 {
		return nil, errors.New("oauthstate: empty secret")
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("oauthstate: derive key: %w", err)
	}
	return &CookieStore{key: key, ttl: ttl, secure: secure}, nil
}

func (s *CookieStore) Issue(w http.ResponseWriter) (string, error) {
	raw := make([]byte, nonceBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("oauthstate: generate nonce: %w", err)
	}
	nonce := base64.RawURLEncoding.EncodeToString(raw)

	now := NowTimeFunc()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        nonce,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("oauthstate: sign nonce: %w", err)
	}

	s.setCookie(w, signed, int(s.ttl.Seconds()))
	return nonce, nil
}

func (s *CookieStore) Consume(w http.ResponseWriter, r *http.Request, echoed string) error {
	s.setCookie(w, "", -1)

	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return ErrStateMissing
	}
	if echoed == "" {
		return ErrStateMismatch
	}

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStateMismatch, err)
	}

	if subtle.ConstantTimeCompare([]byte(claims.ID), []byte(echoed)) != 1 {
		return ErrStateMismatch
	}
	return nil
}

func (s *CookieStore) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
