package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a remote cache backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// backoff repeats an operation with doubling delays between attempts.
type backoff struct {
	attempts int
	delay    time.Duration
}

// connectBackoff is used to wait for Redis to answer PING.
var connectBackoff = backoff{attempts: 3, delay: time.Second}

// do calls op until it succeeds or the attempts run out, and returns the
// last error. Context errors stop it at once.
func (b backoff) do(ctx context.Context, op func(context.Context) error) error {
	delay := b.delay
	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if attempt >= b.attempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
