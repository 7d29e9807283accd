package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/recoveryflow/pkg/diagram"
	"github.com/matzehuels/recoveryflow/pkg/errors"
	"github.com/matzehuels/recoveryflow/pkg/workflow"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recoveryflow.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Basename != workflow.DefaultBasename {
		t.Errorf("Basename = %q, want %q", cfg.Basename, workflow.DefaultBasename)
	}
	if cfg.Format != diagram.FormatPNG || cfg.Direction != "TB" || cfg.Size != "8" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.KeepSource || !cfg.Open {
		t.Error("keep_source and open should default to true")
	}
	if cfg.Cache.TTL.Duration != defaultCacheTTL {
		t.Errorf("Cache.TTL = %v, want %v", cfg.Cache.TTL.Duration, defaultCacheTTL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
format = "svg"
direction = "left-to-right"
open = false

[cache]
redis_url = "redis://localhost:6379/1"
ttl = "72h"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Format != "svg" {
		t.Errorf("Format = %q, want svg", cfg.Format)
	}
	if cfg.Open {
		t.Error("Open should be false")
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Cache.RedisURL = %q", cfg.Cache.RedisURL)
	}
	if cfg.Cache.TTL.Duration != 72*time.Hour {
		t.Errorf("Cache.TTL = %v, want 72h", cfg.Cache.TTL.Duration)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Size != workflow.DefaultSize || !cfg.KeepSource {
		t.Errorf("missing keys should keep defaults: %+v", cfg)
	}
	if got := cfg.workflowOptions().Direction; got != diagram.LeftToRight {
		t.Errorf("workflowOptions().Direction = %q, want LR", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", `colour = "blue"`},
		{"bad duration", "[cache]\nttl = \"soon\""},
		{"malformed", `format = `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("loadConfig() error = %v, want INVALID_INPUT", err)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml"))
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("loadConfig() error = %v, want INVALID_INPUT", err)
		}
	})
}
