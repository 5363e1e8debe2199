// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Configuration store for texelgfx.
// The embedded JSON in defaults/ is the single source of truth for defaults.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/framegrace/texelgfx/defaults"
)

const configName = "texelgfx.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	store   Config
	loadErr error
)

// Err returns the most recent config load error. Load failures never abort;
// the store falls back to embedded defaults.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// Get returns the whole configuration. Callers should treat it as read-only.
func Get() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return store
}

// Reload re-reads the config file, falling back to embedded defaults on
// failure.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadLocked()
	return loadErr
}

// GetString retrieves a string value from the loaded config.
func GetString(section, key, defaultValue string) string {
	return Get().GetString(section, key, defaultValue)
}

// GetInt retrieves an integer value from the loaded config.
func GetInt(section, key string, defaultValue int) int {
	return Get().GetInt(section, key, defaultValue)
}

// GetFloat retrieves a float value from the loaded config.
func GetFloat(section, key string, defaultValue float64) float64 {
	return Get().GetFloat(section, key, defaultValue)
}

// GetBool retrieves a boolean value from the loaded config.
func GetBool(section, key string, defaultValue bool) bool {
	return Get().GetBool(section, key, defaultValue)
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadLocked()
}

func loadLocked() error {
	cfg, err := embeddedDefaults()
	if err != nil {
		log.Printf("Config: Failed to parse embedded defaults: %v", err)
		cfg = make(Config)
	}

	path, pathErr := configPath()
	if pathErr != nil {
		log.Printf("Config: Failed to resolve config path: %v", pathErr)
		store = cfg
		return pathErr
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		if !os.IsNotExist(readErr) {
			log.Printf("Config: Failed to read %s: %v", path, readErr)
			store = cfg
			return readErr
		}
		store = cfg
		return nil
	}

	var user Config
	if err := json.Unmarshal(data, &user); err != nil {
		log.Printf("Config: Failed to parse %s, using defaults: %v", path, err)
		store = cfg
		return err
	}

	// User values win; embedded defaults fill the gaps.
	for name, raw := range cfg {
		if def, ok := raw.(map[string]interface{}); ok {
			user.RegisterDefaults(name, Section(def))
		} else if _, exists := user[name]; !exists {
			user[name] = raw
		}
	}
	store = user
	return nil
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelgfx", configName), nil
}

var (
	embeddedOnce sync.Once
	embedded     Config
	embeddedErr  error
)

// embeddedDefaults returns the parsed embedded defaults, cached after the
// first call.
func embeddedDefaults() (Config, error) {
	embeddedOnce.Do(func() {
		var cfg Config
		if err := json.Unmarshal(defaults.SystemConfig(), &cfg); err != nil {
			embeddedErr = err
			return
		}
		embedded = cfg
	})
	if embeddedErr != nil {
		return nil, embeddedErr
	}
	// Hand out a shallow section copy so callers cannot corrupt the cache.
	out := make(Config, len(embedded))
	for k, v := range embedded {
		if m, ok := v.(map[string]interface{}); ok {
			sec := make(map[string]interface{}, len(m))
			for sk, sv := range m {
				sec[sk] = sv
			}
			out[k] = sec
			continue
		}
		out[k] = v
	}
	return out, nil
}
