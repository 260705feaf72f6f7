// Package config provides configuration management for autogit.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// The default file location is ~/.config/autogit/config.yaml (see DefaultPath).
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention AUTOGIT_SECTION_FIELD.
// For example:
//
//   - AUTOGIT_REPODIR overrides autogit.repodir
//   - AUTOGIT_LOG_LEVEL overrides logging.level
//   - AUTOGIT_DAEMON_SCHEDULE overrides daemon.schedule
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	autogit:
//	  repodir: /var/lib/autogit/repos
//	  tags:
//	    work:
//	      prefix: "https://git.example.com/"
//	    github:
//	      prefix: "https://github.com/"
//
//	logging:
//	  level: warn
//	  format: text
//
//	daemon:
//	  schedule: "@hourly"
//	  concurrency: 2
//
// # Thread Safety
//
// Singleton access uses read-write locks so the daemon can reload the file
// while sweeps read it concurrently.
package config
