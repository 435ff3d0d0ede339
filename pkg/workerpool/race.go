package workerpool

import (
	"context"
	"errors"
)

// ErrNoCandidates is returned by Race when there is nothing to race.
var ErrNoCandidates = errors.New("no candidates")

// Race calls fn for every candidate concurrently and returns the first
// successful result. The context passed to the losers is canceled as soon as
// a winner is known. When every call fails the errors are joined.
func Race[T, R any](ctx context.Context, candidates []T, fn func(context.Context, T) (R, error)) (R, error) {
	var zero R
	if len(candidates) == 0 {
		return zero, ErrNoCandidates
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		value R
		err   error
	}
	results := make(chan outcome, len(candidates))
	for _, c := range candidates {
		go func(c T) {
			v, err := fn(ctx, c)
			results <- outcome{value: v, err: err}
		}(c)
	}

	errs := make([]error, 0, len(candidates))
	for range candidates {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case res := <-results:
			if res.err == nil {
				return res.value, nil
			}
			errs = append(errs, res.err)
		}
	}
	return zero, errors.Join(errs...)
}
