package faults

import "context"

// Try runs fn and routes its error, if any, through r exactly once. It is
// the single abort point of a foundation service operation.
func Try[T any](ctx context.Context, r *Router, fn func() (T, error)) (T, error) {
	v, err := fn()
	if err != nil {
		var zero T
		return zero, r.Route(ctx, err)
	}
	return v, nil
}

// Do is Try for operations without a result.
func Do(ctx context.Context, r *Router, fn func() error) error {
	return r.Route(ctx, fn())
}
