// Package oauthstate holds the short-lived CSRF nonce of the OAuth
// authorization-code flow. A nonce lives for a fixed TTL and can be
// consumed at most once.
package oauthstate

import (
	"errors"
	"net/http"
)

var (
	// ErrStateMissing means the browser presented no nonce at all
	ErrStateMissing = errors.New("oauth state missing")
	// ErrStateMismatch means the nonce was absent from the callback, expired,
	// tampered with, or differs from the echoed value
	ErrStateMismatch = errors.New("oauth state mismatch")
)

type Store interface {
	// Issue creates a nonce, remembers it for the TTL and returns it.
	Issue(w http.ResponseWriter) (string, error)

	// Consume forgets the remembered nonce unconditionally and then checks
	// that it equals echoed.
	Consume(w http.ResponseWriter, r *http.Request, echoed string) error
}
