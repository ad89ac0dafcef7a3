package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates the project or environment does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates an invalid or missing token.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrServerError indicates a server-side failure.
	ErrServerError = errors.New("server error")
)

// APIError is a non-2xx response from the environments API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d) at %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// Unwrap maps the status code to a sentinel so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode >= http.StatusInternalServerError:
		return ErrServerError
	default:
		return nil
	}
}
