// Package timing provides the periodic tick source, cancellable sleeps and
// the timeout and select primitives the display activities are built from.
package timing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrTimeout is matched by every *TimeoutError.
var ErrTimeout = errors.New("timing: timed out")

// TimeoutError is returned by WithTimeout when the timer fires first.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timing: timed out after %s", e.After)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// Ticker delivers ticks at a fixed interval.
type Ticker interface {
	// C is the channel on which ticks are delivered.
	C() <-chan time.Time

	// Stop turns off the ticker.
	Stop()
}

type ticker struct {
	*time.Ticker
}

func (t ticker) C() <-chan time.Time {
	return t.Ticker.C
}

// Every returns a Ticker backed by a [time.Ticker] firing every d.
func Every(d time.Duration) Ticker {
	return ticker{time.NewTicker(d)}
}

// Sleeper pauses the calling goroutine for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep waits for d to pass. It returns ctx.Err() if the context is done
// first. Non-positive durations return immediately.
func Sleep(ctx context.Context, d time.Duration) error {
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

// WithTimeout runs op and returns its result, unless d passes first. In that
// case the context passed to op is cancelled, op's result is discarded and a
// *TimeoutError is returned. Cancellation of ctx itself is reported as
// ctx.Err().
func WithTimeout[T any](ctx context.Context, d time.Duration, op func(context.Context) (T, error)) (T, error) {
	opCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := op(opCtx)
		done <- result{v, err}
	}()

	var zero T
	select {
	case r := <-done:
		return r.v, r.err
	case <-opCtx.Done():
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return zero, &TimeoutError{After: d}
	}
}

// Select runs every op concurrently and returns as soon as the first one
// returns, with its index and error. The context of the remaining ops is then
// cancelled and Select waits for them to return before it does, so no op is
// still running once Select is done.
func Select(ctx context.Context, ops ...func(context.Context) error) (int, error) {
	if len(ops) == 0 {
		return -1, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		index int
		err   error
	}
	var (
		wg    sync.WaitGroup
		first = make(chan result, len(ops))
	)
	for i, op := range ops {
		wg.Add(1)
		go func(i int, op func(context.Context) error) {
			defer wg.Done()
			first <- result{i, op(ctx)}
		}(i, op)
	}

	r := <-first
	cancel()
	wg.Wait()
	return r.index, r.err
}
