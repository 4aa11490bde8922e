package auth

import (
	"fmt"
	"slices"
	"strings"
)

const (
	ScopePickerReadOnly  = "https://www.googleapis.com/auth/photospicker.mediaitems.readonly"
	ScopeLibraryReadOnly = "https://www.googleapis.com/auth/photoslibrary.readonly"
	ScopeLibrary         = "https://www.googleapis.com/auth/photoslibrary"

	// missingLibraryScope is how the library requirement is reported, since
	// either scope satisfies it.
	missingLibraryScope = "photoslibrary.readonly OR photoslibrary"
)

// RequestedScopes is the fixed list sent with every authorization request.
var RequestedScopes = []string{
	"openid",
	"email",
	"profile",
	ScopePickerReadOnly,
	ScopeLibraryReadOnly,
	ScopeLibrary,
}

// ScopeError lists what the user declined on the consent screen.
type ScopeError struct {
	Granted        []string
	Missing        []string
	MissingPicker  bool
	MissingLibrary bool
}

func (e *ScopeError) Error() string {
	switch {
	case e.MissingPicker && e.MissingLibrary:
		return fmt.Sprintf("missing picker and library scopes: %s", strings.Join(e.Missing, ", "))
	case e.MissingPicker:
		return fmt.Sprintf("missing picker scope: %s", strings.Join(e.Missing, ", "))
	default:
		return fmt.Sprintf("missing library scope: %s", strings.Join(e.Missing, ", "))
	}
}

// ValidateScopes requires the picker scope and at least one of the two
// library scopes.
func ValidateScopes(granted []string) error {
	hasPicker := slices.Contains(granted, ScopePickerReadOnly)
	hasLibrary := slices.Contains(granted, ScopeLibraryReadOnly) || slices.Contains(granted, ScopeLibrary)
	if hasPicker && hasLibrary {
		return nil
	}

	scopeErr := &ScopeError{
		Granted:        granted,
		MissingPicker:  !hasPicker,
		MissingLibrary: !hasLibrary,
	}
	if !hasPicker {
		scopeErr.Missing = append(scopeErr.Missing, ScopePickerReadOnly)
	}
	if !hasLibrary {
		scopeErr.Missing = append(scopeErr.Missing, missingLibraryScope)
	}
	return scopeErr
}

// ParseScopes splits a space separated scope string.
func ParseScopes(scope string) []string {
	return strings.Fields(scope)
}
