package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport is returned when no HTTP response was received.
	ErrTransport = errors.New("apiclient: transport failure")
	// ErrUnauthorized is matched by 401 responses.
	ErrUnauthorized = errors.New("apiclient: unauthorized")
	// ErrMalformedResponse is returned when a success body cannot be used.
	ErrMalformedResponse = errors.New("apiclient: malformed response")
	// ErrRequestEncoding is returned when the request body cannot be encoded.
	ErrRequestEncoding = errors.New("apiclient: failed to encode request")
	// ErrUnhealthy is returned by Health when the backend answers but is not healthy.
	ErrUnhealthy = errors.New("apiclient: backend unhealthy")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("apiclient: request failed with status %d", e.Status)
	}
	return fmt.Sprintf("apiclient: %s (status %d)", e.Message, e.Status)
}

// Is matches ErrUnauthorized for 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the backend-provided message carried by err, or "".
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
