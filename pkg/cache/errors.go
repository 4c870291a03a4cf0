package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNetwork is returned when a remote backend cannot be reached.
	ErrNetwork = errors.New("network error")

	// ErrTooLarge is returned when a snapshot exceeds the backend's size limit.
	ErrTooLarge = errors.New("value too large")
)

// RetryableError marks a failure that a later attempt may not repeat, such
// as a refused connection while a backend is still starting.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is, or wraps, a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// unreachable reports a failed ping of a remote backend. It is retryable and
// wraps ErrNetwork.
func unreachable(backend string, err error) error {
	return Retryable(fmt.Errorf("%w: %s: %v", ErrNetwork, backend, err))
}

// Backoff bounds the retries of a backend connection. Delay doubles after
// every failed attempt.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// connectBackoff is used by the Redis and MongoDB constructors. Three
// attempts give a starting container about three seconds.
var connectBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Retry calls fn until it succeeds, returns an error that is not retryable,
// or runs out of attempts. It returns the last error, or ctx.Err() if ctx
// ends while waiting.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff retries fn with the backend connection policy.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return connectBackoff.Retry(ctx, fn)
}
