package config

import (
	_ "embed"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/hermes/pkg/actions"
	"github.com/arthur-debert/hermes/pkg/errors"
	"github.com/arthur-debert/hermes/pkg/logging"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "HERMES_"

// FileNames are the config files looked up in the working directory, in order.
var FileNames = []string{"hermes.toml", "hermes.yaml", "hermes.yml"}

//go:embed embedded/defaults.toml
var defaultConfig []byte

// sections whose keys may be set as HERMES_<SECTION>_<KEY>
var sections = []string{"journal", "filter", "keys"}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions selects the config file.
type LoadOptions struct {
	// Path is an explicit config file. It must exist.
	Path string
	// Dir is searched for FileNames when Path is empty. Defaults to ".".
	Dir string
	// Overrides are dotted keys applied last, such as command-line flags.
	Overrides map[string]interface{}
}

// Load builds the configuration from embedded defaults, then the config
// file, then HERMES_ environment variables, then opts.Overrides.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. Config file
	path, err := findConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// 5. Validate the action list before weak decoding can coerce it
	list, err := actions.ToList(k.Get("actions"))
	if err != nil {
		return nil, err
	}
	if _, err := actions.NewSet(list); err != nil {
		return nil, err
	}
	if err := checkLists(k); err != nil {
		return nil, err
	}

	// 6. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.Actions = list
	cfg.Source = path

	logger.Debug().
		Strs("actions", cfg.Actions).
		Strs("middleware", cfg.Middleware).
		Str("source", cfg.Source).
		Msg("Configuration loaded")

	return &cfg, nil
}

// list keys that must stay lists, and the code reported when they do not
var listKeys = []struct {
	key  string
	code errors.ErrorCode
}{
	{"middleware", errors.ErrInvalidMiddlewareList},
	{"filter.allow", errors.ErrInvalidActionsList},
	{"filter.deny", errors.ErrInvalidActionsList},
}

// checkLists rejects list keys holding scalars, tables, or non-string
// elements before the weak decode can coerce them.
func checkLists(k *koanf.Koanf) error {
	for _, lk := range listKeys {
		if !k.Exists(lk.key) {
			continue
		}
		if err := checkStrings(k.Get(lk.key), lk.code); err != nil {
			return err.WithDetail("key", lk.key)
		}
	}
	return nil
}

func checkStrings(v any, code errors.ErrorCode) *errors.HermesError {
	switch l := v.(type) {
	case []string:
		return nil
	case []any:
		for i, item := range l {
			if _, ok := item.(string); !ok {
				return errors.Of(code).
					WithDetail("index", i).
					WithDetail("type", fmt.Sprintf("%T", item))
			}
		}
		return nil
	default:
		return errors.Of(code).WithDetail("type", fmt.Sprintf("%T", v))
	}
}

func findConfigFile(opts LoadOptions) (string, error) {
	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", opts.Path).
				WithDetail("path", opts.Path)
		}
		return opts.Path, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported config format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// envValue maps HERMES_JOURNAL_PATH to journal.path and splits list
// values on commas.
func envValue(key, value string) (string, interface{}) {
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(name, section+"_") {
			name = section + "." + strings.TrimPrefix(name, section+"_")
			break
		}
	}

	switch name {
	case "actions", "middleware", "filter.allow", "filter.deny":
		return name, splitList(value)
	}
	return name, value
}

func splitList(value string) []interface{} {
	if strings.TrimSpace(value) == "" {
		return []interface{}{}
	}
	parts := strings.Split(value, ",")
	list := make([]interface{}, len(parts))
	for i, p := range parts {
		list[i] = strings.TrimSpace(p)
	}
	return list
}
