// Package clock provides the interruptible wait rpcclient.Client uses
// between retry attempts, so a caller's context cancellation interrupts a
// pending retry backoff instead of blocking until it elapses.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits out d, or returns ctx.Err() early if ctx is
// canceled first. rpcclient.Client.Call uses it as the backoff between
// failed attempts: a canceled request should not block for the full retry
// wait before reporting failure.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
