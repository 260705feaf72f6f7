package config

import (
	"errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{
		Autogit: AutogitConfig{
			RepoDir: "/repos",
			Tags: map[string]TagConfig{
				"work": {Prefix: "https://git.example.com/"},
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidate_NoTags(t *testing.T) {
	cfg := validConfig()
	cfg.Autogit.Tags = nil

	// An empty tag table is legal; it just rejects every repository.
	if err := Validate(cfg); err != nil {
		t.Fatalf("config without tags rejected: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "missing repodir",
			mutate:    func(c *Config) { c.Autogit.RepoDir = "" },
			wantField: "autogit.repodir",
		},
		{
			name: "tag with separator",
			mutate: func(c *Config) {
				c.Autogit.Tags["bad/tag"] = TagConfig{Prefix: "https://x/"}
			},
			wantField: "autogit.tags.bad/tag",
		},
		{
			name: "tag without prefix",
			mutate: func(c *Config) {
				c.Autogit.Tags["nope"] = TagConfig{}
			},
			wantField: "autogit.tags.nope.prefix",
		},
		{
			name:      "bad log level",
			mutate:    func(c *Config) { c.Logging.Level = "loud" },
			wantField: "logging.level",
		},
		{
			name:      "bad log format",
			mutate:    func(c *Config) { c.Logging.Format = "xml" },
			wantField: "logging.format",
		},
		{
			name:      "zero concurrency",
			mutate:    func(c *Config) { c.Daemon.Concurrency = 0 },
			wantField: "daemon.concurrency",
		},
		{
			name:      "negative refresh timeout",
			mutate:    func(c *Config) { c.Daemon.RefreshTimeout = -1 },
			wantField: "daemon.refresh_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error is not a ValidationError: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantField)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Autogit.RepoDir = ""
	cfg.Logging.Level = "loud"

	err := Validate(cfg)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error is not a ValidationError: %v", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("collected %d errors, want 2: %v", len(verr.Errors), err)
	}
}
