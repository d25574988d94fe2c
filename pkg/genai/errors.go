package genai

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCredentials means a backend was selected but no API key is
	// configured for it.
	ErrNoCredentials = errors.New("no backend credentials configured")

	// ErrModelNotFound means the backend rejected the requested model
	// identifier. The client retries these through the alias table.
	ErrModelNotFound = errors.New("model not found")

	// ErrMalformedResponse means the repair ladder could not recover a
	// structured object from the response text.
	ErrMalformedResponse = errors.New("malformed model response")
)

// BackendError is an HTTP-level failure from a generation backend (auth,
// rate limit, server error). Fatal per call; never retried.
type BackendError struct {
	Backend string
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend error (status %d): %s", e.Backend, e.Status, e.Message)
}
