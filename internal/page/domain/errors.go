package domain

import (
	"errors"
	"fmt"
)

// ErrFetchTimeout is returned when the outbound fetch exceeds its deadline.
var ErrFetchTimeout = errors.New("fetch timeout")

// UpstreamError is a non-2xx response from the target site. It is surfaced
// to the caller with the original status, never retried.
type UpstreamError struct {
	Status     int
	StatusText string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d %s", e.Status, e.StatusText)
}

// NetworkError is a transport-level failure (DNS, connection refused, ...)
// distinct from a timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
