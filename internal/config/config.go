package config

import (
	"os"
	"time"
)

type Config struct {
	Layout  LayoutConfig  `yaml:"layout"`
	Export  ExportConfig  `yaml:"export"`
	Helper  HelperConfig  `yaml:"helper"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// LayoutConfig names the reserved entries of a snapper-style volume:
// <volume>/<SnapshotDir>/<id>/<Subtree>/... and <volume>/<SnapshotDir>/<id>/<MetadataFile>.
type LayoutConfig struct {
	SnapshotDir  string `yaml:"snapshotDir"`
	Subtree      string `yaml:"subtree"`
	MetadataFile string `yaml:"metadataFile"`
}

type ExportConfig struct {
	TempRoot string `yaml:"tempRoot"` // defaults to os.TempDir()
}

type HelperConfig struct {
	Command []string `yaml:"command"` // e.g. ["pkexec", "/usr/libexec/snapshot-helper"]
}

type ViewerConfig struct {
	Command []string `yaml:"command"` // empty = print a unified diff
}

type WatchConfig struct {
	Mode           string        `yaml:"mode"`           // "auto", "poll", "fsnotify"
	PollInterval   time.Duration `yaml:"pollInterval"`   // e.g. 1m
	Schedule       string        `yaml:"schedule"`       // cron spec, overrides pollInterval
	DebounceWindow time.Duration `yaml:"debounceWindow"` // e.g. 500ms
}

type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
	Dir   string `yaml:"dir"`   // overrides the state directory
}

const (
	AppName = "compare-with-snapshot"

	DefaultHelperPath = "/usr/local/libexec/snapshot-helper"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			SnapshotDir:  ".snapshots",
			Subtree:      "snapshot",
			MetadataFile: "info.xml",
		},
		Export: ExportConfig{
			TempRoot: os.TempDir(),
		},
		Helper: HelperConfig{
			Command: []string{"pkexec", DefaultHelperPath},
		},
		Viewer: ViewerConfig{
			Command: []string{"meld"},
		},
		Watch: WatchConfig{
			Mode:           "auto",
			PollInterval:   time.Minute,
			DebounceWindow: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
