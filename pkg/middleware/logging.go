package middleware

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/hermes/pkg/types"
)

// Logging logs every action passing through and the outcome of the rest of
// the chain.
func Logging[R any](logger zerolog.Logger) types.Middleware[R] {
	return func(action types.Action, next types.Next[R], _ types.TypeValidator) (R, error) {
		keys := action.Meta.Keys()
		sort.Strings(keys)

		logger.Debug().
			Str("type", action.Type).
			Strs("meta", keys).
			Msg("Action received")

		start := time.Now()
		res, err := next()

		if err != nil {
			logger.Error().
				Err(err).
				Str("type", action.Type).
				Dur("duration", time.Since(start)).
				Msg("Action failed")
			return res, err
		}

		logger.Info().
			Str("type", action.Type).
			Dur("duration", time.Since(start)).
			Msg("Action dispatched")
		return res, nil
	}
}
