package pages

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var errNotYet = errors.New("condition not met yet")

// expiredError is returned by poll when the wait ended before the condition held
type expiredError struct {
	// last is the last error returned by the condition, nil if it only reported "not yet"
	last  error
	cause error
}

func (e *expiredError) Error() string {
	return e.cause.Error()
}

func (e *expiredError) Unwrap() error {
	return e.cause
}

// poll evaluates check every interval until it reports done or the timeout elapses.
// Errors returned by check do not end the wait, they are kept as the last error.
func poll[T any](ctx context.Context, timeout, interval time.Duration, check func() (T, bool, error)) (T, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var last error
	policy := backoff.WithContext(backoff.NewConstantBackOff(interval), waitCtx)
	result, err := backoff.RetryWithData(func() (T, error) {
		value, done, err := check()
		if err != nil {
			last = err
			return value, err
		}
		if !done {
			return value, errNotYet
		}
		return value, nil
	}, policy)
	if err != nil {
		cause := waitCtx.Err()
		if cause == nil {
			cause = err
		}
		return result, &expiredError{last: last, cause: cause}
	}
	return result, nil
}
