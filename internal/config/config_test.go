package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxBatchSize != 300 {
		t.Errorf("MaxBatchSize = %d, want 300", cfg.MaxBatchSize)
	}
	if cfg.Scale != 1 {
		t.Errorf("Scale = %g, want 1", cfg.Scale)
	}
	if cfg.BatchDelay != 5*time.Second {
		t.Errorf("BatchDelay = %v, want 5s", cfg.BatchDelay)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figsync.yaml")
	content := `
token: tok-file
file_id: abc123
asset_root: /tmp/assets
max_batch_size: 100
batch_delay: 250ms
page_ids: ["1:1", "2:1"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "tok-file" || cfg.FileID != "abc123" {
		t.Errorf("credentials not loaded: %+v", cfg)
	}
	if cfg.MaxBatchSize != 100 {
		t.Errorf("MaxBatchSize = %d, want 100", cfg.MaxBatchSize)
	}
	if cfg.BatchDelay != 250*time.Millisecond {
		t.Errorf("BatchDelay = %v, want 250ms", cfg.BatchDelay)
	}
	filter := cfg.PageFilter()
	if len(filter) != 2 || !filter["1:1"] || !filter["2:1"] {
		t.Errorf("PageFilter = %v", filter)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.MaxBatchSize != DefaultMaxBatchSize {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FIGSYNC_TOKEN", "tok-env")
	t.Setenv("FIGSYNC_FILE", "env-file")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "tok-env" {
		t.Errorf("Token = %q, want env override", cfg.Token)
	}
	if cfg.FileID != "env-file" {
		t.Errorf("FileID = %q, want env override", cfg.FileID)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "complete", mutate: func(c *Config) {}, wantErr: false},
		{name: "missing token", mutate: func(c *Config) { c.Token = "" }, wantErr: true},
		{name: "missing file id", mutate: func(c *Config) { c.FileID = "" }, wantErr: true},
		{name: "zero batch size", mutate: func(c *Config) { c.MaxBatchSize = 0 }, wantErr: true},
		{name: "zero scale", mutate: func(c *Config) { c.Scale = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Token = "tok"
			cfg.FileID = "abc"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
