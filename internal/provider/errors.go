package provider

import (
	"context"
	"errors"
	"net"
)

// ErrNoProvider signals that every candidate provider was unavailable or
// exhausted its retries; the engine answers with the local aggregate.
var ErrNoProvider = errors.New("no provider available")

// TransientError marks a failure worth retrying on the same provider:
// timeouts, 5xx responses, temporary network conditions.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient: " + e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as retryable.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// PermanentError marks a failure that retrying cannot fix: missing
// credentials, malformed requests, 4xx responses.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return "permanent: " + e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err as non-retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsTransient classifies an error for the retry policy. Explicit wrappers
// win; otherwise timeouts count as transient and anything unclassified is
// retried once rather than dropped to fallback prematurely.
func IsTransient(err error) bool {
	var perm *PermanentError
	if errors.As(err, &perm) {
		return false
	}
	var trans *TransientError
	if errors.As(err, &trans) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return true
}
