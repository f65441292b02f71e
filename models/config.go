// Package models defines the data structures shared by the classifier,
// the enricher, the storage adapters and the CLI.
package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Store kinds understood by Config.Store.
const (
	StoreSQLite = "sqlite"
	StoreVault  = "vault"
)

// Config holds runtime configuration. Values come from an optional YAML
// file and are overridden by CLI flags.
type Config struct {
	Store          string `yaml:"store"`           // sqlite | vault
	DBPath         string `yaml:"db_path"`         // sqlite file, empty = next to the binary
	VaultDir       string `yaml:"vault_dir"`       // root of the markdown vault
	UserID         string `yaml:"user_id"`         // owner of saved bookmarks
	Seed           uint64 `yaml:"seed"`            // seed for mock enrichment values, 0 = time based
	DetectLanguage bool   `yaml:"detect_language"` // add lang:xx AI tags
	WatchPattern   string `yaml:"watch_pattern"`   // glob filter for vault watching
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Store:        StoreSQLite,
		UserID:       "local",
		VaultDir:     "mindsync-vault",
		WatchPattern: "**/*.md",
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreVault:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreSQLite, StoreVault)
	}
	if c.Store == StoreVault && c.VaultDir == "" {
		return errors.New("vault_dir is required for the vault store")
	}
	return nil
}
