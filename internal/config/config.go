// Package config holds the explicit configuration threaded through
// every pipeline component. There is no ambient process state: each
// command receives the values it needs from here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAssetRoot is used when neither config file nor environment
// names an asset root.
const DefaultAssetRoot = "~/figsync-assets"

// DefaultMaxBatchSize is the per-request node-id ceiling for render
// requests. Observed empirically: larger batches are rejected
// outright, so requests are split before sending.
const DefaultMaxBatchSize = 300

// DefaultBatchDelay spaces consecutive render requests to stay under
// the remote rate limit.
const DefaultBatchDelay = 5 * time.Second

// Config is the full pipeline configuration.
type Config struct {
	Token        string        `yaml:"token"`
	FileID       string        `yaml:"file_id"`
	AssetRoot    string        `yaml:"asset_root"`
	BaseURL      string        `yaml:"base_url"`
	Scale        float64       `yaml:"scale"`
	MaxBatchSize int           `yaml:"max_batch_size"`
	BatchDelay   time.Duration `yaml:"batch_delay"`
	PageIDs      []string      `yaml:"page_ids"`
	Debug        bool          `yaml:"debug"`
}

// DefaultPath returns the default config file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "figsync", "config.yaml")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AssetRoot:    DefaultAssetRoot,
		Scale:        1,
		MaxBatchSize: DefaultMaxBatchSize,
		BatchDelay:   DefaultBatchDelay,
	}
}

// Load reads a YAML config file over the defaults and then applies
// environment overrides. A missing file is not an error; the
// environment alone can carry a full configuration.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv applies FIGSYNC_* environment overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("FIGSYNC_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("FIGSYNC_FILE"); v != "" {
		c.FileID = v
	}
	if v := os.Getenv("FIGSYNC_ROOT"); v != "" {
		c.AssetRoot = v
	}
	if v := os.Getenv("FIGSYNC_BASE_URL"); v != "" {
		c.BaseURL = v
	}
}

// PageFilter returns the restricted page-id set, or nil for all pages.
func (c *Config) PageFilter() map[string]bool {
	if len(c.PageIDs) == 0 {
		return nil
	}
	m := make(map[string]bool, len(c.PageIDs))
	for _, id := range c.PageIDs {
		m[id] = true
	}
	return m
}

// Validate checks the fields every remote operation needs.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("token is required (set FIGSYNC_TOKEN or the token config key)")
	}
	if c.FileID == "" {
		return fmt.Errorf("file id is required (set FIGSYNC_FILE or the file_id config key)")
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("max_batch_size must be positive, got %d", c.MaxBatchSize)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", c.Scale)
	}
	return nil
}
