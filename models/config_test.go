package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg != DefaultConfig() {
			t.Errorf("LoadConfig() = %+v, want defaults", cfg)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		path := filepath.Join(dir, "mindsync.yaml")
		body := "store: vault\nvault_dir: /tmp/v\nuser_id: bob\nseed: 42\n"
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Store != StoreVault || cfg.VaultDir != "/tmp/v" || cfg.UserID != "bob" || cfg.Seed != 42 {
			t.Errorf("LoadConfig() = %+v", cfg)
		}
		if cfg.WatchPattern != "**/*.md" {
			t.Errorf("WatchPattern = %q, want default", cfg.WatchPattern)
		}
	})

	t.Run("invalid store", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("store: postgres\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("LoadConfig() error = nil, want error")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"vault without dir", Config{Store: StoreVault}, true},
		{"empty store", Config{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
