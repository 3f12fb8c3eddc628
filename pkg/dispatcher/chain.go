package dispatcher

import (
	"sync/atomic"

	"github.com/arthur-debert/hermes/pkg/errors"
	"github.com/arthur-debert/hermes/pkg/types"
)

// buildChain folds middleware around dispatch from the right, so the first
// middleware in the list is the outermost and runs first.
func buildChain[R any](
	dispatch types.DispatchFunc[R],
	middleware []types.Middleware[R],
	validate types.TypeValidator,
	guard bool,
) types.DispatchFunc[R] {
	chain := dispatch
	for i := len(middleware) - 1; i >= 0; i-- {
		chain = link(middleware[i], i, chain, validate, guard)
	}
	return chain
}

// link wraps a single middleware around the rest of the chain.
func link[R any](
	m types.Middleware[R],
	index int,
	rest types.DispatchFunc[R],
	validate types.TypeValidator,
	guard bool,
) types.DispatchFunc[R] {
	return func(action types.Action) (R, error) {
		next := types.Next[R](func() (R, error) {
			return rest(action)
		})
		if guard {
			next = onceNext(next, index)
		}
		return m(action, next, validate)
	}
}

// onceNext lets next run a single time per dispatch.
func onceNext[R any](next types.Next[R], index int) types.Next[R] {
	var called atomic.Bool
	return func() (R, error) {
		if !called.CompareAndSwap(false, true) {
			var zero R
			return zero, errors.Of(errors.ErrNextReentered, index).WithDetail("index", index)
		}
		return next()
	}
}
