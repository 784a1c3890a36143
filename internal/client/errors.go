package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthOrNetwork is the single error callers see when a request could not
// be authorized or never reached the server.
var ErrAuthOrNetwork = errors.New("authorization or network error")

// AuthError hides the cause of an authorization or transport failure behind
// ErrAuthOrNetwork while keeping it available to errors.Unwrap.
type AuthError struct {
	Cause error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return ErrAuthOrNetwork.Error()
}

// Unwrap returns the underlying cause.
func (e *AuthError) Unwrap() error {
	return e.Cause
}

// Is matches ErrAuthOrNetwork.
func (e *AuthError) Is(target error) bool {
	return target == ErrAuthOrNetwork
}

// APIError is a non-success response other than an authorization failure.
type APIError struct {
	StatusCode int
	Message    string
	TraceID    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is an APIError with status 409.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}
