package tvdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tvdb configuration")
	// ErrInvalidAPIKey indicates the login endpoint rejected the API key
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrTooManyPages indicates the episode listing exceeded the page limit
	ErrTooManyPages = errors.New("episode listing exceeded the maximum page count")
	// ErrCursorNotProgressing indicates a next-page cursor that does not move forward
	ErrCursorNotProgressing = errors.New("episode page cursor did not advance")
)

// HTTPError is returned for any non-200 response outside of login.
// Status is the server's status line, e.g. "404 Not Found".
type HTTPError struct {
	StatusCode int
	Status     string
	Endpoint   string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("tvdb: %s: response code %s", e.Endpoint, status)
}

// IsNotFound checks if the error indicates a not found response
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an expired or rejected token
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// DecodeError means the server answered 200 but the body could not be decoded
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tvdb: %s: failed to decode response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TransportError wraps network, DNS and TLS failures
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("tvdb: %s: request failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
