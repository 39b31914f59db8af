package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRetriesExhausted is returned when the rate limit persisted past the configured retry ceiling.
var ErrRetriesExhausted = errors.New("rate-limit retries exhausted")

// TransportError is a failed round trip to the catalog service.
// StatusCode is 0 when no HTTP response was received.
type TransportError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog transport error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog transport error (status %d): %s", e.StatusCode, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the service asked us to slow down.
func (e *TransportError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode == http.StatusServiceUnavailable
}

// IsRateLimited reports whether err carries a rate-limit TransportError.
func IsRateLimited(err error) bool {
	var terr *TransportError
	return errors.As(err, &terr) && terr.RateLimited()
}

// RemoteError is returned by the Invoker once a lookup can no longer succeed.
type RemoteError struct {
	Request  LookupRequest
	Attempts int
	Err      error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("lookup %s [%s] failed after %d attempt(s): %v",
		e.Request.ItemID, e.Request.ResponseGroupParam(), e.Attempts, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when a response body is not well-formed markup.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed catalog response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
