// Package config holds the explicit engine configuration. The value is
// loaded once and passed into services at construction; there is no
// module-level cache of environment state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the flat engine configuration.
type Config struct {
	Version  string `json:"version"`
	Currency string `json:"currency"`
	// OverheadPercent is the flat overhead charged on raw-material cost.
	// Policy value, deliberately not a constant: call sites in the field
	// disagree on the right figure.
	OverheadPercent float64 `json:"overhead_percent"`
	NearExpiryDays  int     `json:"near_expiry_days"`
	// IncludeExpired lets expired lots into allocations (last-ranked and
	// warned). Off by default.
	IncludeExpired bool   `json:"include_expired,omitempty"`
	Warehouse      string `json:"warehouse,omitempty"`
}

// configDir is the dot-directory the config file lives in.
const configDir = ".batchalloc"

// Default returns the engine defaults used when no config file exists.
func Default() *Config {
	return &Config{
		Version:         "1.0",
		Currency:        "MXN",
		OverheadPercent: 15,
		NearExpiryDays:  30,
	}
}

// Load reads .batchalloc/config.json from the specified directory.
// Resolution order: dir only (no home fallback). Returns an error when no
// config is found - callers decide whether to fall back to Default.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault reads the config from dir, falling back to Default when the
// file is absent.
func LoadOrDefault(dir string) *Config {
	cfg, err := Load(dir)
	if err != nil {
		return Default()
	}
	return cfg
}

// Save writes config.json to the directory.
func Save(dir string, cfg *Config) error {
	target := filepath.Join(dir, configDir)
	if err := os.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", configDir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(target, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
