// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"

	lndclock "github.com/lightningnetwork/lnd/clock"
)

// Sleeper waits for a duration or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepWithContext waits for the duration or returns early if the context is canceled.
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

// SleeperFor returns a Sleeper driven by clk. With lnd's TestClock, time is
// advanced by the caller instead of waited for.
func SleeperFor(clk lndclock.Clock) Sleeper {
	return func(ctx context.Context, d time.Duration) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clk.TickAfter(d):
			return nil
		}
	}
}
