package config

import (
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
)

// Default values for configuration fields.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	DefaultDaemonSchedule       = "@hourly"
	DefaultDaemonConcurrency    = 2
	DefaultDaemonRefreshTimeout = 10 * time.Minute
)

// DefaultPath returns the default per-user configuration file location,
// ~/.config/autogit/config.yaml. If the home directory cannot be resolved
// the path is relative to the current directory.
func DefaultPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".config", "autogit", "config.yaml")
	}
	return filepath.Join(home, ".config", "autogit", "config.yaml")
}

// ApplyDefaults fills in default values for any unset configuration fields.
// It modifies the config in place.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Daemon.Schedule == "" {
		cfg.Daemon.Schedule = DefaultDaemonSchedule
	}
	if cfg.Daemon.Concurrency <= 0 {
		cfg.Daemon.Concurrency = DefaultDaemonConcurrency
	}
	if cfg.Daemon.RefreshTimeout == 0 {
		cfg.Daemon.RefreshTimeout = DefaultDaemonRefreshTimeout
	}
}
