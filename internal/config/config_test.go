package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Viewport.Width != 300 || cfg.Viewport.Height != 350 {
		t.Errorf("unexpected default viewport: %+v", cfg.Viewport)
	}
	if cfg.Layout.SinglePage {
		t.Error("expected continuous mode by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDefaultEntries(t *testing.T) {
	entries := DefaultEntries()
	if len(entries) == 0 {
		t.Fatal("DefaultEntries() returned empty slice")
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if err := ValidateKey(e.Key); err != nil {
			t.Errorf("default key %q is invalid: %v", e.Key, err)
		}
		if seen[e.Key] {
			t.Errorf("duplicate default key %q", e.Key)
		}
		seen[e.Key] = true
	}

	for _, key := range []string{"viewport.width", "viewport.height", "layout.single_page", "cache.max_entries", "render.look_ahead"} {
		if !seen[key] {
			t.Errorf("DefaultEntries() missing required key: %s", key)
		}
	}
}

func TestGetDefault(t *testing.T) {
	t.Run("existing_key", func(t *testing.T) {
		entry := GetDefault("render.workers")
		if entry == nil {
			t.Fatal("GetDefault() returned nil for existing key")
		}
		if entry.Value != 4 {
			t.Errorf("GetDefault() Value = %v, want 4", entry.Value)
		}
	})

	t.Run("non_existent_key", func(t *testing.T) {
		if entry := GetDefault("does.not.exist"); entry != nil {
			t.Errorf("GetDefault() = %v, want nil for non-existent key", entry)
		}
	})
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"viewport.width", false},
		{"render.retry_delay_ms", false},
		{"a-b", false},
		{"", true},
		{".viewport", true},
		{"viewport.", true},
		{"viewport width", true},
		{"viewport/width", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidKey) {
				t.Errorf("expected ErrInvalidKey, got %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero viewport", func(c *Config) { c.Viewport.Width = 0 }},
		{"negative zoom", func(c *Config) { c.Layout.Zoom = -1 }},
		{"no workers", func(c *Config) { c.Render.Workers = 0 }},
		{"look ahead below -1", func(c *Config) { c.Render.LookAhead = -2 }},
		{"unknown source", func(c *Config) { c.Source.Type = "djvu" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
		{"non-numeric port", func(c *Config) { c.Server.Port = "http" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfig_LogLevel(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.LogLevel() != slog.LevelInfo {
		t.Errorf("expected info, got %v", cfg.LogLevel())
	}
	cfg.Log.Level = "debug"
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("expected debug, got %v", cfg.LogLevel())
	}
	if cfg.RetryDelay() != 50*time.Millisecond {
		t.Errorf("expected 50ms retry delay, got %v", cfg.RetryDelay())
	}
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		configFile := writeConfig(t, `
viewport:
  width: 600
  height: 800
layout:
  single_page: true
`)
		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		if cfg.Viewport.Width != 600 || cfg.Viewport.Height != 800 {
			t.Errorf("expected 600x800, got %+v", cfg.Viewport)
		}
		if !cfg.Layout.SinglePage {
			t.Error("expected single page mode from file")
		}
		if cfg.Cache.MaxEntries != 32 {
			t.Errorf("unset keys keep defaults, got cache.max_entries=%d", cfg.Cache.MaxEntries)
		}
		if mgr.File() != configFile {
			t.Errorf("File() = %q, want %q", mgr.File(), configFile)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		configFile := writeConfig(t, "viewport:\n  width: 600\n  height: 800\n")
		t.Setenv("LEAF_VIEWPORT_WIDTH", "1024")
		t.Setenv("LEAF_RENDER_WORKERS", "2")

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		cfg := mgr.Get()
		if cfg.Viewport.Width != 1024 {
			t.Errorf("expected env width 1024, got %d", cfg.Viewport.Width)
		}
		if cfg.Render.Workers != 2 {
			t.Errorf("expected env workers 2, got %d", cfg.Render.Workers)
		}
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		configFile := writeConfig(t, "render:\n  workers: 0\n")
		_, err := NewManager(configFile)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("value lookup", func(t *testing.T) {
		mgr, err := NewManager(writeConfig(t, "log:\n  level: debug\n"))
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		v, err := mgr.Value("log.level")
		if err != nil || v != "debug" {
			t.Errorf("Value(log.level) = %v, %v", v, err)
		}
		if _, err := mgr.Value("bad key"); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("expected ErrInvalidKey, got %v", err)
		}
		if _, err := mgr.Value("nothing.here"); !errors.Is(err, ErrNoDefault) {
			t.Errorf("expected ErrNoDefault, got %v", err)
		}
	})
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("failed to load written default: %v", err)
	}
	if *mgr.Get() != *DefaultConfig() {
		t.Errorf("written default differs: got %+v", *mgr.Get())
	}
}

func TestManager_OnChange_Multiple(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "cache:\n  max_entries: 8\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	var first, second atomic.Int32
	mgr.OnChange(func(*Config) { first.Add(1) })
	mgr.OnChange(func(*Config) { second.Add(1) })

	mgr.mu.RLock()
	n := len(mgr.callbacks)
	mgr.mu.RUnlock()
	if n != 2 {
		t.Errorf("expected 2 callbacks, got %d", n)
	}
}

func TestManager_WatchConfig(t *testing.T) {
	configFile := writeConfig(t, "viewport:\n  width: 300\n  height: 350\n")

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	var callbackCount atomic.Int32
	var lastWidth atomic.Int32
	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastWidth.Store(int32(cfg.Viewport.Width))
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	// An invalid edit is ignored.
	if err := os.WriteFile(configFile, []byte("viewport:\n  width: 0\n  height: 350\n"), 0644); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
	if got := mgr.Get().Viewport.Width; got != 300 {
		t.Errorf("invalid reload replaced config: width=%d", got)
	}

	if err := os.WriteFile(configFile, []byte("viewport:\n  width: 350\n  height: 300\n"), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if lastWidth.Load() == 350 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if lastWidth.Load() != 350 {
		t.Errorf("expected width 350 after reload, got %d", lastWidth.Load())
	}
	if got := mgr.Get().Viewport; got.Width != 350 || got.Height != 300 {
		t.Errorf("Get() not updated after reload: %+v", got)
	}
}
