package utils

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout reports that a raced operation lost to its deadline.
var ErrTimeout = errors.New("operation timed out")

type raceResult[T any] struct {
	value T
	err   error
}

// Race runs fn against a deadline. The operation is spawned with a child
// context that is cancelled as soon as the deadline wins, and a result that
// arrives after the deadline has already committed is discarded, never
// observed by the caller.
func Race[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so the losing goroutine can always complete its send and exit.
	results := make(chan raceResult[T], 1)
	go func() {
		value, err := fn(runCtx)
		results <- raceResult[T]{value: value, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-results:
		return r.value, r.err
	case <-timer.C:
		return zero, ErrTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
