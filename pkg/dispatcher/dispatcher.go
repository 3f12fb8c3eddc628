package dispatcher

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/hermes/pkg/actions"
	"github.com/arthur-debert/hermes/pkg/errors"
	"github.com/arthur-debert/hermes/pkg/types"
)

// Dispatcher validates actions and hands them to a fixed middleware chain.
type Dispatcher[R any] struct {
	types      *actions.Set
	chain      types.DispatchFunc[R]
	middleware int
	config     Config
	logger     zerolog.Logger
}

// New creates a dispatcher with the default configuration.
func New[R any](actionsList []string, dispatch types.DispatchFunc[R], middleware ...types.Middleware[R]) (*Dispatcher[R], error) {
	return NewWithConfig(DefaultConfig(), actionsList, dispatch, middleware...)
}

// NewWithConfig validates its arguments and builds the middleware chain.
// Checks run in order: actions list, dispatch, middleware.
func NewWithConfig[R any](
	config Config,
	actionsList []string,
	dispatch types.DispatchFunc[R],
	middleware ...types.Middleware[R],
) (*Dispatcher[R], error) {
	set, err := actions.NewSet(actionsList)
	if err != nil {
		return nil, err
	}

	if dispatch == nil {
		return nil, errors.Of(errors.ErrInvalidDispatch)
	}

	for i, m := range middleware {
		if m == nil {
			return nil, errors.Of(errors.ErrInvalidMiddlewareList).WithDetail("index", i)
		}
	}

	d := &Dispatcher[R]{
		types:      set,
		middleware: len(middleware),
		config:     config,
		logger:     config.Logger.With().Str("dispatcher", config.Name).Logger(),
	}
	d.chain = buildChain(dispatch, middleware, d.ValidateType, config.GuardNext)

	d.logger.Debug().
		Strs("actions", set.List()).
		Int("middleware", len(middleware)).
		Bool("guardNext", config.GuardNext).
		Msg("Dispatcher created")

	return d, nil
}

// Create builds a dispatcher and returns it in plain callable form.
func Create[R any](actionsList []string, dispatch types.DispatchFunc[R], middleware ...types.Middleware[R]) (types.Func[R], error) {
	d, err := New(actionsList, dispatch, middleware...)
	if err != nil {
		return nil, err
	}
	return d.Func(), nil
}

// Dispatch sends an action with empty metadata through the chain.
func (d *Dispatcher[R]) Dispatch(actionType string, data any) (R, error) {
	if _, err := d.ValidateType(actionType); err != nil {
		var zero R
		return zero, err
	}
	return d.run(types.NewAction(actionType, data))
}

// DispatchWithMeta sends an action carrying a copy of meta through the chain.
func (d *Dispatcher[R]) DispatchWithMeta(actionType string, data any, meta any) (R, error) {
	var zero R

	if _, err := d.ValidateType(actionType); err != nil {
		return zero, err
	}

	m, err := types.ValidateMeta(meta)
	if err != nil {
		return zero, err
	}

	return d.run(types.Action{Type: actionType, Data: data, Meta: m})
}

// Func returns the dispatcher as a function of (type, data, meta...).
// At most one meta argument is accepted.
func (d *Dispatcher[R]) Func() types.Func[R] {
	return func(actionType string, data any, meta ...any) (R, error) {
		switch len(meta) {
		case 0:
			return d.Dispatch(actionType, data)
		case 1:
			return d.DispatchWithMeta(actionType, data, meta[0])
		default:
			var zero R
			if _, err := d.ValidateType(actionType); err != nil {
				return zero, err
			}
			return zero, errors.Of(errors.ErrInvalidMeta).WithDetail("count", len(meta))
		}
	}
}

func (d *Dispatcher[R]) run(action types.Action) (R, error) {
	d.logger.Trace().
		Str("type", action.Type).
		Int("middleware", d.middleware).
		Msg("Dispatching action")
	return d.chain(action)
}

// ValidateType returns actionType unchanged when it is whitelisted. This is
// the validator every middleware receives.
func (d *Dispatcher[R]) ValidateType(actionType string) (string, error) {
	return d.types.Validate(actionType)
}

// Types returns the whitelisted action types in sorted order.
func (d *Dispatcher[R]) Types() []string {
	return d.types.List()
}

// MiddlewareCount returns the number of middleware in the chain.
func (d *Dispatcher[R]) MiddlewareCount() int {
	return d.middleware
}

// Config returns the dispatcher configuration.
func (d *Dispatcher[R]) Config() Config {
	return d.config
}
