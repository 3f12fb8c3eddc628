package middleware

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/hermes/pkg/errors"
	"github.com/arthur-debert/hermes/pkg/registry"
	"github.com/arthur-debert/hermes/pkg/types"
)

// Options parametrizes the middleware a Catalog builds.
type Options struct {
	Logger       zerolog.Logger
	MetaDefaults types.Meta
	Allow        []string
	Deny         []string
	TraceKey     string
	TimeKey      string
	Now          func() time.Time
}

// Factory creates a middleware from options.
type Factory[R any] func(opts Options) types.Middleware[R]

// Catalog maps middleware names, as used in configuration, to factories.
type Catalog[R any] struct {
	factories registry.Registry[Factory[R]]
}

// NewCatalog returns a catalog holding the built-in middleware:
// recover, log, trace, timestamp, defaults, allow and deny.
func NewCatalog[R any]() *Catalog[R] {
	c := &Catalog[R]{factories: registry.New[Factory[R]]()}

	registry.MustRegister(c.factories, "recover", func(Options) types.Middleware[R] {
		return Recover[R]()
	})
	registry.MustRegister(c.factories, "log", func(o Options) types.Middleware[R] {
		return Logging[R](o.Logger)
	})
	registry.MustRegister(c.factories, "trace", func(o Options) types.Middleware[R] {
		return TraceID[R](keyOr(o.TraceKey, "trace_id"))
	})
	registry.MustRegister(c.factories, "timestamp", func(o Options) types.Middleware[R] {
		return Timestamp[R](keyOr(o.TimeKey, "dispatched_at"), o.Now)
	})
	registry.MustRegister(c.factories, "defaults", func(o Options) types.Middleware[R] {
		return MetaDefaults[R](o.MetaDefaults)
	})
	registry.MustRegister(c.factories, "allow", func(o Options) types.Middleware[R] {
		return AllowTypes[R](o.Allow...)
	})
	registry.MustRegister(c.factories, "deny", func(o Options) types.Middleware[R] {
		return DenyTypes[R](o.Deny...)
	})

	return c
}

// Register adds a named factory.
func (c *Catalog[R]) Register(name string, factory Factory[R]) error {
	return c.factories.Register(name, factory)
}

// Names returns the registered middleware names in sorted order.
func (c *Catalog[R]) Names() []string {
	return c.factories.List()
}

// Build instantiates the named middleware in the given order. An unknown
// name fails with INVALID_MIDDLEWARE_LIST.
func (c *Catalog[R]) Build(names []string, opts Options) ([]types.Middleware[R], error) {
	factories, err := c.factories.Resolve(names)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidMiddlewareList, errors.Message(errors.ErrInvalidMiddlewareList)).
			WithDetails(errors.GetErrorDetails(err))
	}

	chain := make([]types.Middleware[R], len(factories))
	for i, factory := range factories {
		chain[i] = factory(opts)
	}
	return chain, nil
}

func keyOr(key, fallback string) string {
	if key == "" {
		return fallback
	}
	return key
}
