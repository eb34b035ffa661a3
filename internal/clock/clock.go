// Package clock abstracts wall time for loops that sleep between runs.
package clock

import (
	"context"
	"time"
)

// Clock is the time source used by long-running services.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// Real is the system clock. Now is reported in UTC.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now().UTC()
}

func (Real) Sleep(ctx context.Context, d time.Duration) error {
	return SleepWithContext(ctx, d)
}

// SleepWithContext blocks for d, returning ctx.Err() if ctx ends first.
// A non-positive d returns immediately unless ctx is already done.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
