// Package googleapi holds the pieces shared by the Google REST clients:
// bearer-authenticated HTTP clients, JSON helpers and error classification.
package googleapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Sentinel errors for HTTP status code classification.
var (
	ErrBadRequest         = errors.New("googleapi: bad request")
	ErrUnauthorized       = errors.New("googleapi: unauthorized")
	ErrForbidden          = errors.New("googleapi: forbidden")
	ErrNotFound           = errors.New("googleapi: not found")
	ErrThrottled          = errors.New("googleapi: throttled")
	ErrServerError        = errors.New("googleapi: server error")
	ErrFailedPrecondition = errors.New("googleapi: failed precondition")
)

// StatusFailedPrecondition is the canonical status Google returns while a
// resource is not ready yet.
const StatusFailedPrecondition = "FAILED_PRECONDITION"

const maxErrorBody = 64 << 10

// Error is a non-2xx response from a Google API.
type Error struct {
	StatusCode int
	Status     string // canonical status from the JSON error body, e.g. FAILED_PRECONDITION
	Message    string
	Body       string
	Err        error // sentinel, for errors.Is()
}

func (e *Error) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("googleapi: HTTP %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("googleapi: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// ParseError builds an *Error from a non-2xx response and drains its body.
func ParseError(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Message:    http.StatusText(resp.StatusCode),
	}

	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil {
		apiErr.Status = env.Error.Status
		if env.Error.Message != "" {
			apiErr.Message = env.Error.Message
		}
	}

	if apiErr.Status == StatusFailedPrecondition {
		apiErr.Err = ErrFailedPrecondition
	} else {
		apiErr.Err = classifyStatus(resp.StatusCode)
	}
	return apiErr
}

// classifyStatus maps an HTTP status code to a sentinel error.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}
		return nil
	}
}
