package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrHostNotConfigured indicates no image host is active, or the active
	// host's stored configuration is missing or corrupt.
	ErrHostNotConfigured = errors.New("image host not configured")

	// ErrUnsupportedHost indicates an unknown image host variant.
	ErrUnsupportedHost = errors.New("unsupported image host")

	// ErrMalformedResponse indicates a remote returned an unexpected shape.
	ErrMalformedResponse = errors.New("malformed backend response")

	// ErrMalformedPayload indicates an inbound bridge payload did not match
	// the expected shape for its channel.
	ErrMalformedPayload = errors.New("malformed bridge payload")

	// ErrUnsupportedExtension indicates a file extension outside the accepted
	// markdown set.
	ErrUnsupportedExtension = errors.New("unsupported file extension")

	// ErrTokenExchangeFailed indicates the credential-refresh call failed.
	ErrTokenExchangeFailed = errors.New("token exchange failed")
)

// BackendError represents a rejection by a remote storage backend.
// StatusCode carries the HTTP status (or a backend-specific error code when
// the remote reports failures inside a 200 body).
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
}

// IsBackendError checks if the error is a remote rejection and returns it.
func IsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
