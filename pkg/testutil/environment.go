package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

// EnvType selects the filesystem backing a TestEnvironment.
type EnvType int

const (
	// EnvMemoryOnly backs the environment with afero.MemMapFs
	EnvMemoryOnly EnvType = iota
	// EnvIsolated backs the environment with the OS filesystem in a temp dir
	EnvIsolated
)

// TestEnvironment is an isolated setup for a single test.
type TestEnvironment struct {
	t *testing.T

	// FS holds journals. Config files always live on disk.
	FS afero.Fs
	// Root is the directory journals are written under.
	Root string
	// ConfigDir is a real directory for config files.
	ConfigDir string
	// StateHome and DataHome are the XDG directories in effect.
	StateHome string
	DataHome  string
}

// NewTestEnvironment points the XDG directories at temp dirs, clears
// HERMES_ variables, and prepares a filesystem. Settings are restored
// when the test ends.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	base := t.TempDir()
	env := &TestEnvironment{
		t:         t,
		ConfigDir: filepath.Join(base, "config"),
		StateHome: filepath.Join(base, "state"),
		DataHome:  filepath.Join(base, "data"),
	}

	if err := os.MkdirAll(env.ConfigDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	// registered first so it runs after the variables are restored
	t.Cleanup(xdg.Reload)
	ClearEnv(t, "HERMES_")
	t.Setenv("XDG_STATE_HOME", env.StateHome)
	t.Setenv("XDG_DATA_HOME", env.DataHome)
	xdg.Reload()

	switch envType {
	case EnvIsolated:
		env.FS = afero.NewOsFs()
		env.Root = filepath.Join(base, "journal")
	default:
		env.FS = afero.NewMemMapFs()
		env.Root = "/journal"
	}

	return env
}

// JournalPath returns a journal file path under Root.
func (env *TestEnvironment) JournalPath(name string) string {
	return filepath.Join(env.Root, name)
}

// WriteConfig writes a config file into ConfigDir and returns its path.
func (env *TestEnvironment) WriteConfig(name, content string) string {
	env.t.Helper()
	return WriteConfig(env.t, env.ConfigDir, name, content)
}

// WriteConfig writes content to dir/name and returns the path.
func WriteConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// ClearEnv unsets every environment variable starting with prefix for the
// duration of the test.
func ClearEnv(t *testing.T, prefix string) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, prefix) {
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}
	}
}
