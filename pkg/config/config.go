package config

import "time"

// Config is the root configuration structure for autogit.
// It contains the gateway settings (repository root and tag table) plus
// the logging and daemon sections.
type Config struct {
	// Autogit contains the gateway configuration: the repository root
	// directory and the tag table mapping name prefixes to upstream URLs.
	Autogit AutogitConfig `yaml:"autogit"`

	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Daemon contains configuration for the background refresh daemon
	// (`autogit daemon` / `autogit sweep`).
	Daemon DaemonConfig `yaml:"daemon"`
}

// AutogitConfig is the top-level `autogit` section.
type AutogitConfig struct {
	// RepoDir is the root directory under which bare mirrors are stored.
	// Mirrors live at RepoDir/<tag>/<relative-path>.
	RepoDir string `yaml:"repodir"`

	// Tags maps a tag name (the first path segment of a requested
	// repository) to its upstream source. A repository name whose tag is
	// not present here is rejected before any side effect.
	Tags map[string]TagConfig `yaml:"tags"`
}

// TagConfig describes one upstream namespace.
type TagConfig struct {
	// Prefix is the URL prefix prepended to the post-tag path segment to
	// form the upstream clone URL.
	// Example: "https://git.example.com/" + "org/project.git"
	Prefix string `yaml:"prefix"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "warn". The gateway is quiet by default so its output does
	// not compete with git's forwarded stderr on the SSH channel.
	Level string `yaml:"level"`

	// Format is the output format ("text" or "json").
	// Default: "text"
	Format string `yaml:"format"`
}

// DaemonConfig contains configuration for the mirror refresh daemon.
type DaemonConfig struct {
	// Schedule is a cron expression controlling when full refresh sweeps
	// run. Standard five-field syntax plus the @every/@hourly shorthands
	// are accepted.
	// Default: "@hourly"
	Schedule string `yaml:"schedule"`

	// MetricsListen is an optional host:port address; when set, the daemon
	// serves Prometheus metrics at /metrics on it.
	// Default: "" (disabled)
	MetricsListen string `yaml:"metrics_listen"`

	// Concurrency is the number of mirrors refreshed in parallel during a
	// sweep.
	// Default: 2
	Concurrency int `yaml:"concurrency"`

	// RefreshTimeout bounds a single mirror refresh during a sweep. Zero
	// means no timeout.
	// Default: 10m
	RefreshTimeout time.Duration `yaml:"refresh_timeout"`

	// WatchConfig enables hot reload of the configuration file: when the
	// file changes on disk the daemon reloads the tag table and repodir
	// for subsequent sweeps.
	// Default: false
	WatchConfig bool `yaml:"watch_config"`
}
