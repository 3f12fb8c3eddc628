package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/hermes/pkg/errors"
	"github.com/arthur-debert/hermes/pkg/types"
)

// Config is the effective hermes configuration.
type Config struct {
	Actions    []string `koanf:"actions" toml:"actions"`
	Middleware []string `koanf:"middleware" toml:"middleware"`
	GuardNext  bool     `koanf:"guard_next" toml:"guard_next"`
	Journal    Journal  `koanf:"journal" toml:"journal"`
	Meta       Meta     `koanf:"meta" toml:"meta"`
	Filter     Filter   `koanf:"filter" toml:"filter"`
	Keys       Keys     `koanf:"keys" toml:"keys"`

	// Source is the config file that was loaded, if any.
	Source string `koanf:"-" toml:"-"`
}

// Journal configures where dispatched actions are recorded.
type Journal struct {
	Path   string `koanf:"path" toml:"path"`
	Format string `koanf:"format" toml:"format"`
}

// Meta holds metadata applied by the defaults middleware.
type Meta struct {
	Defaults types.Meta `koanf:"defaults" toml:"defaults"`
}

// Filter holds the type lists for the allow and deny middleware.
type Filter struct {
	Allow []string `koanf:"allow" toml:"allow"`
	Deny  []string `koanf:"deny" toml:"deny"`
}

// Keys names the meta keys written by the trace and timestamp middleware.
type Keys struct {
	Trace     string `koanf:"trace" toml:"trace"`
	Timestamp string `koanf:"timestamp" toml:"timestamp"`
}

// TOML renders the configuration as a TOML document.
func (c *Config) TOML() (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot render configuration")
	}
	return string(out), nil
}

// DefaultsContent returns the embedded default configuration file.
func DefaultsContent() string {
	return string(defaultConfig)
}
