package bcoin

import (
	"errors"
	"fmt"
)

var (
	// ErrClient marks a failure reported by the node (non-2xx response).
	ErrClient = errors.New("bcoin client error")
	// ErrMaxRetriesExceeded is returned once every attempt of a request timed out.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded with bcoin client")
	// ErrMalformedRecord marks a node response that does not match the expected schema.
	ErrMalformedRecord = errors.New("malformed bcoin record")
	// ErrInvalidArgument is returned for caller input rejected before any request is made.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ClientError is a node-reported failure.
type ClientError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("bcoin %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *ClientError) Unwrap() error {
	return ErrClient
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedRecord, fmt.Sprintf(format, args...))
}
