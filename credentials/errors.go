package credentials

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrTokenRefreshFailed = errors.New("token refresh failed")
)

// RefreshFailedError carries the upstream response body of a rejected
// refresh grant so it can be logged by the caller.
type RefreshFailedError struct {
	UserID string
	Body   string
	Err    error
}

func (e *RefreshFailedError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("token refresh failed for user %s: %s", e.UserID, e.Body)
	}
	return fmt.Sprintf("token refresh failed for user %s: %v", e.UserID, e.Err)
}

func (e *RefreshFailedError) Unwrap() error {
	return e.Err
}

func (e *RefreshFailedError) Is(target error) bool {
	return target == ErrTokenRefreshFailed
}
