package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes callers branch on with errors.Is.
var (
	// ErrUnavailable: no usable response (connection refused, DNS, timeout).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized: the server rejected the credential (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServer: the server failed (HTTP 5xx).
	ErrServer = errors.New("server error")
)

// APIError is a non-401 client error (4xx) carrying the server-supplied
// message when one was present in the response body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
