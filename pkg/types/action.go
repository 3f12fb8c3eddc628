package types

// Action is the tagged record passed through the middleware chain.
// A fresh Action is built for every dispatch; Meta is never nil.
type Action struct {
	Type string `json:"type" yaml:"type"`
	Data any    `json:"data,omitempty" yaml:"data,omitempty"`
	Meta Meta   `json:"meta" yaml:"meta"`
}

// NewAction builds an Action with an empty, non-nil Meta.
func NewAction(actionType string, data any) Action {
	return Action{Type: actionType, Data: data, Meta: Meta{}}
}

// DispatchFunc receives a fully constructed action. It is used both for the
// caller-supplied terminal dispatch and for the composed chain.
type DispatchFunc[R any] func(action Action) (R, error)

// Next continues the chain with the action the middleware was given.
type Next[R any] func() (R, error)

// TypeValidator returns actionType unchanged when it belongs to the
// dispatcher's whitelist and an UNKNOWN_ACTION_TYPE error otherwise.
type TypeValidator func(actionType string) (string, error)

// Middleware intercepts an action on its way to the terminal dispatch.
// It continues the chain by calling next; when it returns without doing
// so, its own return value becomes the dispatcher's.
type Middleware[R any] func(action Action, next Next[R], validateType TypeValidator) (R, error)

// Func is the dispatcher in plain callable form. Passing no meta argument
// means metadata was omitted.
type Func[R any] func(actionType string, data any, meta ...any) (R, error)
