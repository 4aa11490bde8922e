package auth

import (
	"errors"
	"fmt"
)

var (
	ErrMissingParams       = errors.New("missing code or state")
	ErrMissingRefreshToken = errors.New("missing refresh token; revoke access and re-consent")
	ErrMissingSubject      = errors.New("userinfo has no subject")
)

// Reason is the coarse, machine readable cause put on the login redirect.
type Reason string

const (
	ReasonOAuth   Reason = "oauth"
	ReasonMissing Reason = "missing"
	ReasonState   Reason = "state"
	ReasonFailed  Reason = "failed"
)

// HandshakeError is any failure of the callback. Stage is the last stage
// that completed before the failure.
type HandshakeError struct {
	Stage  Stage
	Reason Reason
	Err    error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("oauth handshake failed after %s (%s): %v", e.Stage, e.Reason, e.Err)
}

func (e *HandshakeError) Unwrap() error {
	return e.Err
}

// ConfigError means the Google client is not configured well enough to
// start a login. Reason names the missing setting.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "oauth not configured: " + e.Reason
}
