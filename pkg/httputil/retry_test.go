package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("connection reset")

func TestRetry(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		attempts  int
		failures  int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"success first try", 3, 0, true, 1, false},
		{"recovers after transient", 3, 2, true, 3, false},
		{"gives up after attempts", 2, 5, true, 2, true},
		{"permanent error not retried", 3, 5, false, 1, true},
		{"single attempt", 1, 1, true, 1, true},
		{"zero attempts means one", 0, 0, true, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					if tt.retryable {
						return &RetryableError{Err: errTransient}
					}
					return errTransient
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("Retry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if err != nil && !errors.Is(err, errTransient) {
				t.Errorf("error should wrap the cause: %v", err)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Second, func() error {
		return &RetryableError{Err: errTransient}
	})
	if err != context.Canceled {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}

func TestSleep(t *testing.T) {
	if err := Sleep(context.Background(), 0); err != nil {
		t.Errorf("Sleep(0) = %v", err)
	}
	if err := Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Sleep(1ms) = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); err != context.Canceled {
		t.Errorf("Sleep on cancelled ctx = %v, want context.Canceled", err)
	}
}

func TestPolicyWaits(t *testing.T) {
	var waits []time.Duration
	var failed []int
	p := Policy{
		Attempts: 5,
		Initial:  time.Millisecond,
		Max:      3 * time.Millisecond,
		OnRetry: func(attempt int, err error, wait time.Duration) {
			failed = append(failed, attempt)
			waits = append(waits, wait)
		},
	}

	calls := 0
	err := p.Do(context.Background(), func() error {
		calls++
		return &RetryableError{Err: errTransient}
	})
	if !errors.Is(err, errTransient) {
		t.Fatalf("Do() = %v, want transient error", err)
	}
	if calls != 5 {
		t.Errorf("calls = %d, want 5", calls)
	}
	want := []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond, 3 * time.Millisecond}
	if len(waits) != len(want) {
		t.Fatalf("waits = %v, want %v", waits, want)
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Errorf("wait[%d] = %v, want %v", i, waits[i], want[i])
		}
		if failed[i] != i+1 {
			t.Errorf("OnRetry attempt[%d] = %d, want %d", i, failed[i], i+1)
		}
	}
}

func TestPolicyNoRetryOnSuccess(t *testing.T) {
	p := Policy{Attempts: 3, OnRetry: func(int, error, time.Duration) {
		t.Error("OnRetry called for a successful call")
	}}
	if err := p.Do(context.Background(), func() error { return nil }); err != nil {
		t.Errorf("Do() = %v", err)
	}
}
