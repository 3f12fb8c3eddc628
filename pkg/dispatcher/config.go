package dispatcher

import "github.com/rs/zerolog"

// Config holds dispatcher configuration options.
type Config struct {
	// Name identifies the dispatcher in log output.
	Name string

	// GuardNext makes a second call to the same next continuation fail
	// with NEXT_REENTERED instead of running the rest of the chain again.
	GuardNext bool

	// Logger receives construction and dispatch events at Debug and Trace.
	// The zero config discards them.
	Logger zerolog.Logger
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{
		Name:      "default",
		GuardNext: false,
		Logger:    zerolog.Nop(),
	}
}

// WithName returns a copy of the config with the name set.
func (c Config) WithName(name string) Config {
	c.Name = name
	return c
}

// WithGuardNext returns a copy of the config with the next guard set.
func (c Config) WithGuardNext(guard bool) Config {
	c.GuardNext = guard
	return c
}

// WithLogger returns a copy of the config with the logger set.
func (c Config) WithLogger(logger zerolog.Logger) Config {
	c.Logger = logger
	return c
}
