// Package retry runs an operation again after transient failures, waiting an
// exponentially growing delay between attempts. The solix API client uses it
// for network errors and gateway responses.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy controls how often and how patiently an operation is retried.
type Policy struct {
	Attempts  int           // total attempts, including the first
	BaseDelay time.Duration // wait before the second attempt
	MaxDelay  time.Duration // upper bound for any single wait
	Factor    float64       // growth of the wait per attempt

	// Retryable decides whether err is worth another attempt. Nil retries
	// everything except errors wrapped with Permanent.
	Retryable func(error) bool
}

// DefaultPolicy suits calls to a local or nearby solix server.
var DefaultPolicy = Policy{
	Attempts:  3,
	BaseDelay: 100 * time.Millisecond,
	MaxDelay:  2 * time.Second,
	Factor:    2.0,
}

// Delay returns the wait before the given attempt (attempt 1 is the first retry).
func (p Policy) Delay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	d := float64(p.BaseDelay)
	for i := 1; i < attempt; i++ {
		d *= p.Factor
		if p.MaxDelay > 0 && time.Duration(d) >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return time.Duration(d)
}

type permanent struct{ err error }

func (p permanent) Error() string { return p.err.Error() }
func (p permanent) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanent{err: err}
}

func (p Policy) shouldRetry(err error) bool {
	var perm permanent
	if errors.As(err, &perm) {
		return false
	}
	if p.Retryable == nil {
		return true
	}
	return p.Retryable(err)
}

// Do calls fn until it succeeds, returns a non-retryable error, the attempts
// run out, or ctx is done. fn receives the zero-based attempt number.
func Do[T any](ctx context.Context, policy Policy, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T
	attempts := max(policy.Attempts, 1)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(policy.Delay(attempt))
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("context cancelled: %w", err)
		}

		result, err := fn(ctx, attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !policy.shouldRetry(err) {
			var perm permanent
			if errors.As(err, &perm) {
				return zero, perm.err
			}
			return zero, err
		}
	}

	return zero, fmt.Errorf("giving up after %d attempts: %w", attempts, lastErr)
}
