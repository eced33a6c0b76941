package tracker

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a remote-service failure. The web layer and the
// retry policy both switch on it.
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindRateLimited  ErrorKind = "rate_limited"
	KindTimeout      ErrorKind = "timeout"
	KindUnavailable  ErrorKind = "unavailable"
	KindInvalid      ErrorKind = "invalid"
)

// APIError is a typed remote-service failure.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("task service %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("task service %s: %s", e.Kind, e.Message)
}

// UserMessage maps the failure to a user-facing string with no
// internal detail.
func (e *APIError) UserMessage() string {
	switch e.Kind {
	case KindUnauthorized:
		return "The task service rejected our credentials. Check the configured API token."
	case KindForbidden:
		return "The task service denied access to this resource."
	case KindNotFound:
		return "The requested task was not found in the task service."
	case KindRateLimited, KindTimeout, KindUnavailable:
		return "The task service is temporarily unavailable. Please try again in a moment."
	case KindInvalid:
		return e.Message
	default:
		return "The task service returned an unexpected error."
	}
}

// Temporary reports whether the failure class is transient.
func (e *APIError) Temporary() bool {
	switch e.Kind {
	case KindRateLimited, KindTimeout, KindUnavailable:
		return true
	}
	return false
}

func errorFromStatus(code int, message string) *APIError {
	kind := KindUnavailable
	switch {
	case code == http.StatusUnauthorized:
		kind = KindUnauthorized
	case code == http.StatusForbidden:
		kind = KindForbidden
	case code == http.StatusNotFound:
		kind = KindNotFound
	case code == http.StatusTooManyRequests:
		kind = KindRateLimited
	case code >= 400 && code < 500:
		kind = KindInvalid
	}
	return &APIError{Kind: kind, StatusCode: code, Message: message}
}
