// Package batch provides a bounded-concurrency mapper used by the config
// derivers to fan out over ISM and hook sub-modules.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultLimit bounds in-flight provider calls when no explicit limit is given.
const DefaultLimit = 8

// Map applies fn to every input concurrently, running at most limit calls at
// a time, and returns the results in input order. The first error cancels the
// remaining calls.
func Map[In, Out any](ctx context.Context, limit int, inputs []In, fn func(context.Context, In) (Out, error)) ([]Out, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]Out, len(inputs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, in := range inputs {
		eg.Go(func() error {
			out, err := fn(ctx, in)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			results[i] = out
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
