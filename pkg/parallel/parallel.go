// Package parallel runs independent jobs with a concurrency ceiling.
//
// [Map] is the collect-all mode used for batch testing: every item runs to
// completion and each item's error is reported in its own [Result]. A failure
// never cancels in-flight or pending work.
//
// [MapFailFast] stops at the first error. Items that have not started are
// skipped and in-flight workers see a cancelled context.
//
// In both modes results are index-aligned with the input, regardless of the
// order in which workers complete. Retries are the worker's responsibility.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/typespub/pkg/errors"
)

// Result is the outcome of one worker invocation.
type Result[R any] struct {
	Value R
	Err   error
}

// DefaultConcurrency returns the concurrency used when the caller does not
// choose one: the number of logical CPUs.
func DefaultConcurrency() int {
	return runtime.NumCPU()
}

// Map calls fn for every item with at most n calls in flight and returns the
// outcomes in input order.
//
// The returned error is non-nil only when n is not positive or ctx is
// cancelled before all items have been started; worker failures are reported
// through Result.Err.
func Map[T, R any](ctx context.Context, n int, items []T, fn func(context.Context, T) (R, error)) ([]Result[R], error) {
	if err := checkConcurrency(n); err != nil {
		return nil, err
	}

	results := make([]Result[R], len(items))
	g := new(errgroup.Group)
	g.SetLimit(n)

	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			v, err := fn(ctx, item)
			results[i] = Result[R]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// MapFailFast calls fn for every item with at most n calls in flight and
// returns the values in input order. The first error cancels the context
// passed to the remaining workers and is returned.
func MapFailFast[T, R any](ctx context.Context, n int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if err := checkConcurrency(n); err != nil {
		return nil, err
	}

	values := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n)

	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := fn(gctx, item)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

func checkConcurrency(n int) error {
	if n <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency must be positive, got %d", n)
	}
	return nil
}
