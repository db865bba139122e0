package nexis

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the scoring service. Message carries
// the body's detail field when present, or a generic text otherwise.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("nexis: %s (status %d)", e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("nexis: request failed (status %d)", e.StatusCode)
}

// IsAuthError reports whether err is a 401 from the service. Callers must
// discard the session token and force re-authentication when this is true.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsAPIError extracts the *APIError from err's chain, if any.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// UserMessage renders err as a message fit for display: the service's detail
// text for API errors, a generic network message otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := IsAPIError(err); ok {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fmt.Sprintf("The service returned an error (status %d). Please try again.", apiErr.StatusCode)
	}
	return "Network error. Please check your connection."
}
