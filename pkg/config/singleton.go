package config

import (
	"fmt"
	"sync"
)

// The process-wide configuration. Commands load it once at startup; watch
// mode reloads it when the config file is saved.
var (
	mu          sync.RWMutex
	current     *Config
	currentPath string
	loadOnce    sync.Once
)

// Initialize loads the configuration at path, with ZEDTEX_* environment
// overrides, and makes it the global configuration. An empty path means
// defaults. Only the first call loads anything.
func Initialize(path string) error {
	var err error
	loadOnce.Do(func() {
		var cfg *Config
		cfg, err = LoadConfigWithEnvOverrides(path)
		if err != nil {
			return
		}
		mu.Lock()
		current, currentPath = cfg, path
		mu.Unlock()
	})
	return err
}

// GetConfig returns the global configuration, or nil before Initialize.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetConfig replaces the global configuration. Tests use it to avoid files.
func SetConfig(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}

// Path returns the file the global configuration was loaded from, or "" when
// it came from defaults.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return currentPath
}

// Reload loads path again and, if it is valid, makes it the global
// configuration. On error the current configuration stays in place.
func Reload(path string) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reload %s: %w", path, err)
	}

	mu.Lock()
	current, currentPath = cfg, path
	mu.Unlock()
	return cfg, nil
}
