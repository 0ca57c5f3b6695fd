package polling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sceneforge/internal/services"
)

// Outcome is the result of one status check.
type Outcome[T any] struct {
	done   bool
	failed bool
	reason string
	result T
}

// Pending reports that the job has not reached a terminal state.
func Pending[T any]() Outcome[T] {
	return Outcome[T]{}
}

// Complete reports successful completion with the given result payload.
func Complete[T any](result T) Outcome[T] {
	return Outcome[T]{done: true, result: result}
}

// Failed reports a terminal provider-side failure.
func Failed[T any](reason string) Outcome[T] {
	return Outcome[T]{failed: true, reason: reason}
}

// Check produces the current job outcome. Returning an error aborts the wait
// immediately; it is reserved for failures of the status probe itself.
type Check[T any] func(ctx context.Context) (Outcome[T], error)

// Options tunes a single wait. Callers supply values matched to the
// underlying service's expected latency.
type Options struct {
	// Interval between status checks.
	Interval time.Duration
	// Timeout is the wall-clock budget for the whole wait.
	Timeout time.Duration
	// Stage annotates errors for classification.
	Stage string
}

const (
	defaultInterval = 5 * time.Second
	defaultTimeout  = 10 * time.Minute
)

// Wait blocks until check reports completion or failure, the timeout elapses,
// or ctx is cancelled. The first check runs immediately; subsequent checks run
// every Interval, so a wait issues at most timeout/interval + 1 checks.
func Wait[T any](ctx context.Context, opts Options, check Check[T]) (T, error) {
	var zero T
	if check == nil {
		return zero, errors.New("polling: check function is required")
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	start := time.Now()
	for {
		outcome, err := check(ctx)
		if err != nil {
			return zero, err
		}
		if outcome.failed {
			return zero, services.Wrap(services.ErrJobFailed, opts.Stage, "poll", outcome.reason, nil)
		}
		if outcome.done {
			return outcome.result, nil
		}

		if time.Since(start)+interval > timeout {
			return zero, services.Wrap(services.ErrTimeout, opts.Stage, "poll",
				fmt.Sprintf("job did not complete within %s", timeout), nil)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
