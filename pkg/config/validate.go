package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g. "autogit.repodir").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All errors are collected and returned
// together.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Autogit.RepoDir == "" {
		errs = append(errs, FieldError{
			Field:   "autogit.repodir",
			Message: "repository root directory is required",
		})
	}

	for name, tag := range cfg.Autogit.Tags {
		if name == "" {
			errs = append(errs, FieldError{
				Field:   "autogit.tags",
				Message: "tag name must not be empty",
			})
			continue
		}
		if strings.Contains(name, "/") {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("autogit.tags.%s", name),
				Message: "tag name must not contain a path separator",
			})
		}
		if tag.Prefix == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("autogit.tags.%s.prefix", name),
				Message: "url prefix is required",
			})
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level %q (must be debug, info, warn, or error)", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid format %q (must be text or json)", cfg.Logging.Format),
		})
	}

	if cfg.Daemon.Concurrency < 1 {
		errs = append(errs, FieldError{
			Field:   "daemon.concurrency",
			Message: "must be at least 1",
		})
	}
	if cfg.Daemon.RefreshTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "daemon.refresh_timeout",
			Message: "must not be negative",
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}
