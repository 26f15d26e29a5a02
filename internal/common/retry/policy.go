// internal/common/retry/policy.go
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultDelay       = 2 * time.Second
)

var ErrAttemptsExhausted = errors.New("ATTEMPTS_EXHAUSTED")

// ExhaustedError is returned when no attempt succeeded. It matches ErrAttemptsExhausted and
// the last attempt's error under errors.Is.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts: %v", ErrAttemptsExhausted, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() []error {
	if e.Last == nil {
		return []error{ErrAttemptsExhausted}
	}
	return []error{ErrAttemptsExhausted, e.Last}
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Policy retries an operation a fixed number of times with a fixed delay between attempts.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Sleep       SleepFunc
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		Delay:       DefaultDelay,
		Sleep:       Sleep,
	}
}

// Sleep is the real-clock SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AttemptFunc performs one attempt. attempt starts at 1.
type AttemptFunc func(ctx context.Context, attempt int) error

// AttemptHook observes every failed attempt.
type AttemptHook func(attempt int, err error)

// Do runs op until it succeeds or MaxAttempts attempts have failed. On exhaustion the returned
// error is an *ExhaustedError. A done ctx stops the loop between attempts.
func (p Policy) Do(ctx context.Context, op AttemptFunc, onFailure AttemptHook) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, p.Delay); err != nil {
				return attempt - 1, &ExhaustedError{Attempts: attempt - 1, Last: lastErr}
			}
		}

		lastErr = op(ctx, attempt)
		if lastErr == nil {
			return attempt, nil
		}
		if onFailure != nil {
			onFailure(attempt, lastErr)
		}
	}

	return maxAttempts, &ExhaustedError{Attempts: maxAttempts, Last: lastErr}
}
