package middleware

import (
	"github.com/arthur-debert/hermes/pkg/errors"
	"github.com/arthur-debert/hermes/pkg/types"
)

// AllowTypes lets only the listed types continue down the chain. Other
// whitelisted types stop here with an ACTION_FILTERED error.
//
// The allow list itself is checked against the dispatcher's whitelist on
// every call, so a name that was never whitelisted surfaces as
// UNKNOWN_ACTION_TYPE instead of silently filtering everything.
func AllowTypes[R any](allowed ...string) types.Middleware[R] {
	return func(action types.Action, next types.Next[R], validateType types.TypeValidator) (R, error) {
		var zero R
		pass := false
		for _, name := range allowed {
			t, err := validateType(name)
			if err != nil {
				return zero, err
			}
			if t == action.Type {
				pass = true
			}
		}
		if !pass {
			return zero, errors.Newf(errors.ErrActionFiltered, "action %q is not allowed here", action.Type).
				WithDetail("type", action.Type)
		}
		return next()
	}
}

// DenyTypes stops the listed types with an ACTION_FILTERED error.
func DenyTypes[R any](denied ...string) types.Middleware[R] {
	return func(action types.Action, next types.Next[R], validateType types.TypeValidator) (R, error) {
		var zero R
		for _, name := range denied {
			t, err := validateType(name)
			if err != nil {
				return zero, err
			}
			if t == action.Type {
				return zero, errors.Newf(errors.ErrActionFiltered, "action %q is denied", action.Type).
					WithDetail("type", action.Type)
			}
		}
		return next()
	}
}
