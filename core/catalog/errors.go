package catalog

import (
	"fmt"
	"strings"
)

// AuthError means no usable bearer token could be obtained.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Err)
	}
	return "authentication failed: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError is a non-2xx catalog response that survived the single 401 retry.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog API error: %d - %s", e.Status, e.Body)
}

// NetworkError wraps a transport failure. Requests that fail this way are not retried.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request %s failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError is returned when a response body does not match the expected schema.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NotFoundError is returned once every fallback term for a category came back empty or failed.
type NotFoundError struct {
	Category   string
	TriedTerms []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no playlists found for genre %q after trying terms: %s",
		e.Category, strings.Join(e.TriedTerms, ", "))
}
