// Package resilience wraps storage calls with linear-backoff retries and coalesces bursts of
// triggers with keyed debouncing.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// StorageError is the failure reported once every attempt of a storage call has failed
type StorageError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s failed after %d attempt(s): %v", e.Op, e.Attempts, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Permanent marks an error that must not be retried, such as a validation failure
type Permanent interface {
	Permanent() bool
}

// Result carries either the data of a successful call or its error
type Result[T any] struct {
	Success  bool
	Data     T
	Err      error
	Attempts int
}

// WithRetry invokes op up to maxRetries times, sleeping baseDelay*attempt between attempts.
// It never returns a bare error: failures come back inside the Result, wrapped in a *StorageError
// unless op returned a Permanent error, which is passed through after the first attempt.
func WithRetry[T any](ctx context.Context, op string, fn func(ctx context.Context) (T, error), maxRetries int, baseDelay time.Duration) (res Result[T]) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{Err: &StorageError{Op: op, Attempts: res.Attempts, Err: fmt.Errorf("panic: %v", r)}, Attempts: res.Attempts}
		}
	}()

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		res.Attempts = attempt
		data, err := fn(ctx)
		if err == nil {
			return Result[T]{Success: true, Data: data, Attempts: attempt}
		}
		lastErr = err

		var perm Permanent
		if errors.As(err, &perm) && perm.Permanent() {
			return Result[T]{Err: err, Attempts: attempt}
		}
		if attempt == maxRetries {
			break
		}

		timer := time.NewTimer(baseDelay * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result[T]{Err: &StorageError{Op: op, Attempts: attempt, Err: ctx.Err()}, Attempts: attempt}
		case <-timer.C:
		}
	}

	return Result[T]{Err: &StorageError{Op: op, Attempts: res.Attempts, Err: lastErr}, Attempts: res.Attempts}
}
