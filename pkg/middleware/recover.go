package middleware

import (
	"runtime"

	"github.com/arthur-debert/hermes/pkg/errors"
	"github.com/arthur-debert/hermes/pkg/types"
)

// Recover turns a panic in the rest of the chain into a HANDLER_PANIC error.
func Recover[R any]() types.Middleware[R] {
	return func(action types.Action, next types.Next[R], _ types.TypeValidator) (res R, err error) {
		defer func() {
			if r := recover(); r != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)

				var zero R
				res = zero
				err = errors.Newf(errors.ErrHandlerPanic, "panic while dispatching %s: %v", action.Type, r).
					WithDetail("type", action.Type).
					WithDetail("stack", string(stack[:n]))
			}
		}()

		return next()
	}
}
