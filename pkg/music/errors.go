package music

import (
	"errors"
	"fmt"
)

// ErrCapabilityUnavailable signals that no configured provider offers the
// requested capability (currently: vocal synthesis). Callers decide
// whether to degrade gracefully or abort.
var ErrCapabilityUnavailable = errors.New("no available provider supports this capability")

// AllProvidersFailedError is raised when every fallback candidate failed.
// It wraps the error from the LAST attempted provider so callers can
// inspect provider-specific detail.
type AllProvidersFailedError struct {
	LastService string
	Err         error
}

func (e *AllProvidersFailedError) Error() string {
	return fmt.Sprintf("all music services failed, last attempt %s: %v", e.LastService, e.Err)
}

func (e *AllProvidersFailedError) Unwrap() error {
	return e.Err
}
