package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// SystemPath is the only config file the privileged helper reads.
const SystemPath = "/etc/" + AppName + "/config.yaml"

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// replaces $(VAR) with os.Getenv(VAR)
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		return os.Getenv(envPattern.FindStringSubmatch(m)[1])
	})
}

// Load reads path on top of Default(). Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	// read raw YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// expand $(ENV_VAR) placeholders
	expanded := expandEnvVars(string(data))

	// unmarshal over the defaults
	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		d := Default()
		return &d, nil
	}
	return cfg, err
}

// Validate rejects layouts that would let a reserved name escape its parent.
func (c *Config) Validate() error {
	for name, v := range map[string]string{
		"layout.snapshotDir":  c.Layout.SnapshotDir,
		"layout.subtree":      c.Layout.Subtree,
		"layout.metadataFile": c.Layout.MetadataFile,
	} {
		if v == "" || v == "." || v == ".." || filepath.Base(v) != v {
			return fmt.Errorf("invalid %s %q: must be a single path component", name, v)
		}
	}

	switch c.Watch.Mode {
	case "auto", "poll", "fsnotify":
	default:
		return fmt.Errorf("invalid watch.mode %q", c.Watch.Mode)
	}

	return nil
}

// UserPath returns the per-user config file location.
func UserPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, "config.yaml")
}

// StateDir returns the directory holding the log file. XDG_STATE_HOME wins
// over the per-user default of ~/.local/state.
func (c *Config) StateDir() string {
	if c.Logging.Dir != "" {
		return c.Logging.Dir
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, ".local", "state", AppName)
}
