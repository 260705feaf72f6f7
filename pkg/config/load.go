package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that behavior.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// AUTOGIT_SECTION_FIELD (e.g. AUTOGIT_REPODIR, AUTOGIT_LOG_LEVEL) and always
// take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies AUTOGIT_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("AUTOGIT_REPODIR"); val != "" {
		cfg.Autogit.RepoDir = val
	}

	if val := os.Getenv("AUTOGIT_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("AUTOGIT_LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	if val := os.Getenv("AUTOGIT_DAEMON_SCHEDULE"); val != "" {
		cfg.Daemon.Schedule = val
	}
	if val := os.Getenv("AUTOGIT_DAEMON_METRICS_LISTEN"); val != "" {
		cfg.Daemon.MetricsListen = val
	}
	if val := os.Getenv("AUTOGIT_DAEMON_CONCURRENCY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Daemon.Concurrency = i
		}
	}
	if val := os.Getenv("AUTOGIT_DAEMON_REFRESH_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Daemon.RefreshTimeout = d
		}
	}
	if val := os.Getenv("AUTOGIT_DAEMON_WATCH_CONFIG"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Daemon.WatchConfig = b
		}
	}
}
