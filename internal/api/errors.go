package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNetworkFailure matches every failure to obtain a response from the
	// status service: transport errors, timeouts and non-OK statuses.
	ErrNetworkFailure = errors.New("network failure")

	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrServerError indicates a server-side error
	ErrServerError = errors.New("server error")

	// ErrTimeout indicates the request timed out
	ErrTimeout = errors.New("request timed out")

	// ErrInvalidResponse indicates a response body that could not be decoded
	ErrInvalidResponse = errors.New("invalid response")
)

// APIError represents a non-OK status returned by the status service
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s (endpoint: %s)", e.StatusCode, e.Status, e.Endpoint)
}

// Is implements errors.Is for APIError
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNetworkFailure:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrServerError:
		return e.StatusCode >= 500
	}
	return false
}

// Temporary reports whether retrying the request may succeed
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// NewAPIError creates a new API error
func NewAPIError(statusCode int, status, endpoint string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Status:     status,
		Endpoint:   endpoint,
	}
}
