// Package wait polls a condition until it holds or a deadline passes.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// Options controls how long and how often a condition is polled
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
}

// DefaultOptions matches the suite's default command timeout
var DefaultOptions = Options{
	Timeout:  10 * time.Second,
	Interval: 100 * time.Millisecond,
}

// WithTimeout returns a copy of o with a different deadline
func (o Options) WithTimeout(d time.Duration) Options {
	o.Timeout = d
	return o
}

func (o Options) normalized() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultOptions.Timeout
	}
	if o.Interval <= 0 {
		o.Interval = DefaultOptions.Interval
	}
	if o.Interval > o.Timeout {
		o.Interval = o.Timeout
	}
	return o
}

// ErrConditionNotMet is what a check returns while its condition is false
var ErrConditionNotMet = errors.New("condition not met")

// TimeoutError is returned when a condition never held within the deadline.
// It reports what was expected and the last value observed.
type TimeoutError struct {
	Description string
	Expected    any
	Observed    any
	Timeout     time.Duration
	Err         error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s: expected %v, observed %v",
		e.Timeout, e.Description, e.Expected, e.Observed)
	if e.Err != nil && !errors.Is(e.Err, ErrConditionNotMet) {
		msg += fmt.Sprintf(" (last error: %v)", e.Err)
	}
	return msg
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// Check inspects the current state. It returns the observed value and whether
// the condition holds; an error means the state could not be read yet and
// counts as "not yet".
type Check[T any] func(ctx context.Context) (T, bool, error)

// Until polls check until it reports success and returns the observed value.
// When the deadline passes first it returns a *TimeoutError. Cancelling ctx
// stops polling and returns the context error wrapped in the TimeoutError.
func Until[T any](ctx context.Context, opts Options, description string, expected any, check Check[T]) (T, error) {
	opts = opts.normalized()

	var (
		observed T
		lastErr  error
	)
	backoff := retry.WithMaxDuration(opts.Timeout, retry.NewConstant(opts.Interval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		v, ok, err := check(ctx)
		observed = v
		switch {
		case err != nil:
			lastErr = err
		case !ok:
			lastErr = ErrConditionNotMet
		default:
			lastErr = nil
			return nil
		}
		return retry.RetryableError(lastErr)
	})
	if err == nil {
		return observed, nil
	}

	cause := lastErr
	if ctxErr := ctx.Err(); ctxErr != nil {
		cause = ctxErr
	}
	return observed, &TimeoutError{
		Description: description,
		Expected:    expected,
		Observed:    observed,
		Timeout:     opts.Timeout,
		Err:         cause,
	}
}

// True polls a boolean condition
func True(ctx context.Context, opts Options, description string, cond func(ctx context.Context) (bool, error)) error {
	_, err := Until(ctx, opts, description, true, func(ctx context.Context) (bool, bool, error) {
		ok, err := cond(ctx)
		return ok, ok, err
	})
	return err
}

// Equal polls read until it returns want
func Equal[T comparable](ctx context.Context, opts Options, description string, want T, read func(ctx context.Context) (T, error)) error {
	_, err := Until(ctx, opts, description, want, func(ctx context.Context) (T, bool, error) {
		got, err := read(ctx)
		return got, err == nil && got == want, err
	})
	return err
}
