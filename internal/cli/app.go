package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/hermes/pkg/config"
	"github.com/arthur-debert/hermes/pkg/dispatcher"
	"github.com/arthur-debert/hermes/pkg/errors"
	"github.com/arthur-debert/hermes/pkg/journal"
	"github.com/arthur-debert/hermes/pkg/logging"
	"github.com/arthur-debert/hermes/pkg/middleware"
	"github.com/arthur-debert/hermes/pkg/output"
	"github.com/arthur-debert/hermes/pkg/types"
)

// app carries the state shared by all commands.
type app struct {
	fs         afero.Fs
	configPath string
	journal    string
	format     string
}

func (a *app) loadConfig() (*config.Config, error) {
	opts := config.LoadOptions{Path: a.configPath}
	if a.journal != "" {
		opts.Overrides = map[string]interface{}{"journal.path": a.journal}
	}
	return config.Load(opts)
}

func (a *app) printer(cmd *cobra.Command) (*output.Printer, error) {
	format, err := output.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(cmd.OutOrStdout(), format)
}

func (a *app) openJournal(cfg *config.Config) (*journal.Journal, error) {
	return journal.Open(a.fs, journalPath(cfg), journal.Format(cfg.Journal.Format))
}

func journalPath(cfg *config.Config) string {
	if cfg.Journal.Path != "" {
		return cfg.Journal.Path
	}
	return journal.DefaultPath(journal.Format(cfg.Journal.Format))
}

func middlewareOptions(cfg *config.Config) middleware.Options {
	return middleware.Options{
		Logger:       logging.GetLogger("middleware"),
		MetaDefaults: cfg.Meta.Defaults,
		Allow:        cfg.Filter.Allow,
		Deny:         cfg.Filter.Deny,
		TraceKey:     cfg.Keys.Trace,
		TimeKey:      cfg.Keys.Timestamp,
	}
}

// buildDispatcher wires the configured actions and middleware in front of
// dispatch.
func buildDispatcher[R any](cfg *config.Config, dispatch types.DispatchFunc[R]) (*dispatcher.Dispatcher[R], error) {
	chain, err := middleware.NewCatalog[R]().Build(cfg.Middleware, middlewareOptions(cfg))
	if err != nil {
		return nil, err
	}

	dc := dispatcher.DefaultConfig().
		WithName("hermes").
		WithGuardNext(cfg.GuardNext).
		WithLogger(logging.GetLogger("dispatcher"))

	return dispatcher.NewWithConfig(dc, cfg.Actions, dispatch, chain...)
}

// decodeJSON decodes a flag value into loosely typed data. An empty value
// decodes to nil.
func decodeJSON(flag, value string) (any, error) {
	if value == "" {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(value), &v); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "--%s is not valid JSON", flag).
			WithDetail("flag", flag)
	}
	return v, nil
}

// parseMetaPairs turns key=value flags into metadata.
func parseMetaPairs(pairs []string) (types.Meta, error) {
	meta := make(types.Meta, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "--meta expects key=value, got %q", pair).
				WithDetail("flag", "meta")
		}
		meta[key] = value
	}
	return meta, nil
}
