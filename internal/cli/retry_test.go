package cli

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

var discard = log.New(io.Discard)

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := retry(context.Background(), discard, 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return retryable(errors.New("connection refused"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("retry() error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("bad credentials")
	calls := 0
	err := retry(context.Background(), discard, 5, time.Millisecond, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("err = %v after %d calls, want permanent error after 1", err, calls)
	}
}

func TestRetryReturnsLastError(t *testing.T) {
	last := errors.New("still down")
	err := retry(context.Background(), discard, 2, time.Millisecond, func() error {
		return retryable(last)
	})
	if err != last {
		t.Errorf("err = %v, want the unwrapped last error", err)
	}
}

func TestRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retry(ctx, discard, 3, time.Hour, func() error {
		return retryable(errors.New("down"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRetryableNil(t *testing.T) {
	if retryable(nil) != nil {
		t.Error("retryable(nil) should be nil")
	}
}
