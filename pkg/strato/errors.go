package strato

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an error returned by a cloud service.
type APIError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Title      string `json:"title"       yaml:"title"`
	Detail     string `json:"detail"      yaml:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s (status: %d)", e.Title, e.StatusCode)
	}

	return fmt.Sprintf("%s: %s (status: %d)", e.Title, e.Detail, e.StatusCode)
}

// Common static errors that can be wrapped with context.
var (
	ErrEndpointNotFound     = errors.New("endpoint not found")
	ErrInvalidResponse      = errors.New("invalid response from server")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrTooManyItems         = errors.New("query returned more than one result")
	ErrNoMoreItems          = errors.New("no more items")
	ErrIncompatibleVersion  = errors.New("incompatible API version")
	ErrConfigRequired       = errors.New("config is required")
	ErrAuthURLRequired      = errors.New("auth URL or endpoint is required")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrUnknownProtocolValue = errors.New("unknown value in server response")
)

// errorTitles maps well-known HTTP statuses to error titles used when the
// service returns a non-JSON error body.
var errorTitles = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusConflict:            "Conflict",
	http.StatusTooManyRequests:     "Too Many Requests",
	http.StatusInternalServerError: "Internal Server Error",
	http.StatusServiceUnavailable:  "Service Unavailable",
}

// ParseErrorResponse builds an APIError from an error response body. Network
// services wrap errors in a single-key object such as {"NeutronError": {...}}
// or {"itemNotFound": {...}}; compute services use the same shape. Bodies
// that do not parse fall back to the raw text.
func ParseErrorResponse(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Title:      errorTitles[statusCode],
	}

	if apiErr.Title == "" {
		apiErr.Title = http.StatusText(statusCode)
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err == nil {
		for key, raw := range wrapper {
			var inner struct {
				Message string `json:"message"`
				Detail  string `json:"detail"`
			}

			if err := json.Unmarshal(raw, &inner); err == nil && inner.Message != "" {
				apiErr.Title = key
				apiErr.Detail = inner.Message

				if inner.Detail != "" {
					apiErr.Detail = inner.Message + ": " + inner.Detail
				}

				return apiErr
			}
		}
	}

	if len(body) > 0 {
		apiErr.Detail = string(body)
	}

	return apiErr
}

// IsNotFound checks if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrResourceNotFound) {
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error indicates missing or expired credentials.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsForbidden checks if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}

	return false
}

// IsConflict checks if the error indicates a conflicting resource state.
func IsConflict(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusConflict
	}

	return false
}

// IsEndpointNotFound checks if the error came from failed service discovery.
func IsEndpointNotFound(err error) bool {
	return errors.Is(err, ErrEndpointNotFound)
}

// IsTooManyItems checks if the error came from a query expected to match
// exactly one resource matching several.
func IsTooManyItems(err error) bool {
	return errors.Is(err, ErrTooManyItems)
}
