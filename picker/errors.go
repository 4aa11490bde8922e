package picker

import (
	"errors"
	"fmt"

	apperrors "github.com/jrsteele09/photo-wall/internal/errors"
)

var (
	ErrSessionNotFound         = fmt.Errorf("picker session %w", apperrors.ErrNotFound)
	ErrMalformedPickerResponse = errors.New("malformed picker response")
)

// MalformedResponseError reports a picker listing where items came back but
// none of them could be read.
type MalformedResponseError struct {
	SessionID    string
	RawCount     int
	InvalidCount int
	Samples      []RawItem
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed picker response for session %s: %d raw items, %d invalid", e.SessionID, e.RawCount, e.InvalidCount)
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedPickerResponse
}
