package config

import (
	"fmt"
	"sync"
)

var (
	// globalConfig holds the singleton configuration instance.
	globalConfig *Config

	// configMutex protects access to globalConfig.
	configMutex sync.RWMutex

	// initOnce ensures configuration is initialized only once.
	initOnce sync.Once
)

// Initialize loads configuration from the specified path with environment
// variable overrides and stores it as the global singleton configuration.
// This function should be called once at startup; subsequent calls are
// ignored.
func Initialize(path string) error {
	var initErr error

	initOnce.Do(func() {
		cfg, err := LoadConfigWithEnvOverrides(path)
		if err != nil {
			initErr = err
			return
		}

		configMutex.Lock()
		globalConfig = cfg
		configMutex.Unlock()
	})

	return initErr
}

// GetConfig returns the global configuration instance, or nil if Initialize
// has not been called successfully. Thread-safe.
//
// For testing, prefer dependency injection with explicit Config instances
// over the global singleton.
func GetConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// Reload replaces the global configuration by loading the file again. Unlike
// Initialize it may be called repeatedly; the daemon uses it for config hot
// reload.
func Reload(path string) error {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}

	configMutex.Lock()
	globalConfig = cfg
	configMutex.Unlock()

	return nil
}

// ResetForTesting clears the singleton state so tests can re-initialize.
func ResetForTesting() {
	configMutex.Lock()
	globalConfig = nil
	configMutex.Unlock()
	initOnce = sync.Once{}
}
