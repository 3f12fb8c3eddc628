// Package dispatcher builds guarded dispatchers.
//
// A dispatcher accepts an action type, an optional data payload and optional
// metadata, checks the type against a fixed whitelist and the metadata
// against a shape constraint, then runs the resulting Action through an
// ordered middleware chain ending in a terminal dispatch function supplied
// by the caller.
//
// # Construction
//
// All arguments are validated once, when the dispatcher is built:
//
//	d, err := dispatcher.New(
//	    []string{"NEW_MESSAGE", "USER_LOGIN"},
//	    func(a types.Action) (string, error) { return a.Type, nil },
//	    middleware.Recover[string](),
//	    middleware.Logging[string](logger),
//	)
//
// A nil actions list, an empty type name, a nil dispatch function or a nil
// middleware element is rejected with INVALID_ACTIONS_LIST,
// INVALID_DISPATCH or INVALID_MIDDLEWARE_LIST and no dispatcher is returned.
//
// # Middleware chain
//
// Middleware run in declared order. Each receives the action, a next
// continuation and the type validator:
//
//	func(action types.Action, next types.Next[R], validate types.TypeValidator) (R, error)
//
// Calling next runs the remainder of the chain and returns its result. Not
// calling it stops the chain; the middleware's own return value is what the
// caller of Dispatch receives. Calling next twice runs the remainder twice
// unless Config.GuardNext is set, in which case the second call fails with
// NEXT_REENTERED.
//
// # Dispatching
//
//	result, err := d.Dispatch("USER_LOGIN", payload)
//	result, err = d.DispatchWithMeta("USER_LOGIN", payload, map[string]any{"source": "cli"})
//
// The type is checked first (UNKNOWN_ACTION_TYPE), then the metadata when
// supplied (INVALID_META). Supplied metadata is shallow-copied; omitted
// metadata becomes an empty map. Nothing runs before validation succeeds.
//
// Dispatchers hold no mutable state and can be shared between goroutines as
// long as the supplied collaborators allow it.
package dispatcher
