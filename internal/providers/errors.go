package providers

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrProviderUnavailable is returned when no provider is configured.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrNotFound marks an upstream 404; callers treat it as an absent value.
	ErrNotFound = errors.New("not found upstream")
)

// UpstreamError wraps any failed upstream call with the operation that failed.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return "upstream " + e.Op + " failed"
	}
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Wrap returns err as an UpstreamError for op, leaving nil and already wrapped errors untouched.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}

// IsNotFound reports whether err carries an upstream 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
