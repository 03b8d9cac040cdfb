package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks err as transient (network failure, 5xx).
// Only errors wrapped this way are retried.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped with [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	// Attempts is the total number of calls; values below 1 mean one.
	Attempts int
	// Initial is the wait before the second call. It doubles after every
	// further failure.
	Initial time.Duration
	// Max caps the wait. Zero leaves it uncapped.
	Max time.Duration
	// OnRetry, when set, is called before each wait with the 1-based number
	// of the attempt that just failed.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// Do calls fn until it succeeds, returns a permanent error, or the attempts
// run out. The last error is returned unchanged; a cancelled ctx during a
// wait returns ctx.Err().
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	wait := p.Initial

	var err error
	for n := 1; ; n++ {
		if err = fn(); err == nil || !IsRetryable(err) || n == attempts {
			return err
		}
		if p.Max > 0 && wait > p.Max {
			wait = p.Max
		}
		if p.OnRetry != nil {
			p.OnRetry(n, err, wait)
		}
		if serr := Sleep(ctx, wait); serr != nil {
			return serr
		}
		wait *= 2
	}
}

// Retry runs fn under a Policy with the given attempts and initial delay.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	return Policy{Attempts: attempts, Initial: delay}.Do(ctx, fn)
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
