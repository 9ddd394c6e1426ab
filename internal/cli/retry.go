package cli

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

// Connection retry defaults for remote backends.
const (
	defaultConnectAttempts = 3
	connectRetryDelay      = time.Second
)

// retryableError marks a failure that is worth another attempt, such as a
// backend that is not accepting connections yet.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// retryable wraps err so that [retry] tries again. Nil stays nil.
func retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// retry calls fn up to attempts times, doubling delay after each failure.
// Only errors wrapped with [retryable] are retried; the last error is
// returned unwrapped, or ctx.Err() if the context ends while waiting.
func retry(ctx context.Context, logger *log.Logger, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		var re *retryableError
		if !errors.As(err, &re) {
			return err
		}
		lastErr = re.err

		if i < attempts-1 {
			logger.Warn("connection failed, retrying", "attempt", i+1, "of", attempts, "in", delay, "err", lastErr)
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
