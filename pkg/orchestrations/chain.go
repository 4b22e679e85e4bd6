// Package orchestrations composes foundation services into caller-facing
// operations.
//
// A composed operation never validates, logs or translates a fault. Each
// fault was classified and logged where it was detected, so it is handed
// back to the caller as the very same error value.
package orchestrations

import "context"

// Chain returns an operation that runs first and then second with first's
// result. second is not called when first fails. Errors from either step
// are returned unchanged.
func Chain[In, Mid, Out any](
	first func(ctx context.Context, in In) (Mid, error),
	second func(ctx context.Context, mid Mid) (Out, error),
) func(ctx context.Context, in In) (Out, error) {
	return func(ctx context.Context, in In) (Out, error) {
		mid, err := first(ctx, in)
		if err != nil {
			var zero Out
			return zero, err
		}
		return second(ctx, mid)
	}
}
