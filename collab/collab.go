// ABOUTME: Shared pieces of the external collaborators: sentinels and simulated latency
// ABOUTME: Simulated collaborators wait like a network call but never perform I/O
package collab

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrNotConnected      = errors.New("integration not connected")
	ErrPaymentDeclined   = errors.New("payment declined")
	ErrMalformedScan     = errors.New("malformed scan response")
	ErrHeaderInjection   = errors.New("line break in email header")
)

// Latency returns how long a simulated call should take.
type Latency func() time.Duration

// Fixed returns a constant latency.
func Fixed(d time.Duration) Latency {
	return func() time.Duration { return d }
}

// Between returns a uniformly random latency in [lo, hi].
func Between(lo, hi time.Duration) Latency {
	return func() time.Duration {
		if hi <= lo {
			return lo
		}
		return lo + time.Duration(rand.Int64N(int64(hi-lo)+1))
	}
}

// wait blocks for the latency or until ctx is done. A simulated call that
// has started always reports an outcome: success, or ctx's error.
func wait(ctx context.Context, latency Latency) error {
	var d time.Duration
	if latency != nil {
		d = latency()
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
