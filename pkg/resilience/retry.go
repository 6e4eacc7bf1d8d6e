// Package resilience wraps transient-failure-prone operations, currently
// just retrying database writes with exponential backoff.
package resilience

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

const (
	maxAttempts    = 3
	initialDelay   = 100 * time.Millisecond
	maxDelay       = 10 * time.Second
	jitterFraction = 0.1
)

// Retry runs fn up to three times with doubling, jittered backoff. It stops
// early when fn succeeds or ctx is cancelled.
func Retry(ctx context.Context, name string, fn func() error) error {
	log := slog.Default().With("component", "retry", "operation", name)

	delay := initialDelay
	var lastErr error
	for attempt := 1; ; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				log.Info("succeeded after retry", "attempt", attempt)
			}
			return nil
		}
		if attempt == maxAttempts {
			return fmt.Errorf("all %d attempts failed for %s: %w", maxAttempts, name, lastErr)
		}

		wait := jitter(delay)
		log.Warn("operation failed, retrying",
			"attempt", attempt, "error", lastErr, "next_delay", wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted during backoff: %w", ctx.Err())
		}
		if delay *= 2; delay > maxDelay {
			delay = maxDelay
		}
	}
}

func jitter(d time.Duration) time.Duration {
	offset := float64(d) * jitterFraction * (2*rand.Float64() - 1)
	return d + time.Duration(offset)
}
