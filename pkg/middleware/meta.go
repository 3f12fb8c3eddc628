package middleware

import (
	"time"

	"github.com/google/uuid"

	"github.com/arthur-debert/hermes/pkg/types"
)

// MetaDefaults fills in metadata keys the caller did not supply.
func MetaDefaults[R any](defaults types.Meta) types.Middleware[R] {
	defaults = defaults.Clone()
	return func(action types.Action, next types.Next[R], _ types.TypeValidator) (R, error) {
		for k, v := range defaults {
			if _, ok := action.Meta[k]; !ok {
				action.Meta[k] = v
			}
		}
		return next()
	}
}

// TraceID stamps a random UUID under key unless one is already present.
func TraceID[R any](key string) types.Middleware[R] {
	return func(action types.Action, next types.Next[R], _ types.TypeValidator) (R, error) {
		if _, ok := action.Meta[key]; !ok {
			action.Meta[key] = uuid.NewString()
		}
		return next()
	}
}

// Timestamp records the dispatch time under key in RFC 3339 form.
// A nil now uses time.Now.
func Timestamp[R any](key string, now func() time.Time) types.Middleware[R] {
	if now == nil {
		now = time.Now
	}
	return func(action types.Action, next types.Next[R], _ types.TypeValidator) (R, error) {
		action.Meta[key] = now().UTC().Format(time.RFC3339Nano)
		return next()
	}
}
