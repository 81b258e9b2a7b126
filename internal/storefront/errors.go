package storefront

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned before a request is sent.
	ErrValidation       = errors.New("validation failed")
	ErrNoRestaurants    = errors.New("no restaurants found")
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrStale marks a response that arrived after a newer fetch started.
	ErrStale = errors.New("stale response")
)

// APIError is a non-success response from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
