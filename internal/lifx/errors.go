package lifx

import (
	"errors"
	"fmt"
)

// ErrAPI is the umbrella error for everything the client can return;
// callers that don't care which kind they got can errors.Is against it.
var ErrAPI = errors.New("lifx cloud api error")

// AuthError means the access token was rejected (401/403).
// Not transient, the user has to fix their token.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}

func (e *AuthError) Unwrap() error {
	return ErrAPI
}

// ConnectionError is a transport-level failure or timeout, safe to retry
// on the next poll.
type ConnectionError struct {
	Reason string
	Err    error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ConnectionError) Unwrap() []error {
	return []error{ErrAPI, e.Err}
}

// APIError is any other non-2xx response, carrying the status and body.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return ErrAPI
}
