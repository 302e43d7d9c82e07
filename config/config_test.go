package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/scrolldeck/parameter"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Navigation.Cooldown != 700*time.Millisecond {
		t.Errorf("expected default cooldown 700ms, got %s", cfg.Navigation.Cooldown)
	}
	if cfg.Marker.Driver != MarkerSQLite {
		t.Errorf("expected default driver %q, got %q", MarkerSQLite, cfg.Marker.Driver)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Probe.Tolerance != parameter.ProbeTolerance {
		t.Errorf("expected default tolerance, got %v", cfg.Probe.Tolerance)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrolldeck.yml")
	data := `
navigation:
  cooldown: 500ms
  wheel_threshold: 30
marker:
  driver: file
  path: /tmp/seen
scenes:
  path: deck.yml
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Navigation.Cooldown != 500*time.Millisecond {
		t.Errorf("cooldown: got %s, want 500ms", cfg.Navigation.Cooldown)
	}
	if cfg.Navigation.WheelThreshold != 30 {
		t.Errorf("wheel_threshold: got %v, want 30", cfg.Navigation.WheelThreshold)
	}
	// Untouched keys keep their defaults
	if cfg.Navigation.TouchThreshold != parameter.NavTouchThreshold {
		t.Errorf("touch_threshold: got %v, want default", cfg.Navigation.TouchThreshold)
	}
	if cfg.Marker.Driver != MarkerFile || cfg.MarkerPath() != "/tmp/seen" {
		t.Errorf("marker: got %+v", cfg.Marker)
	}
	if cfg.Scenes.Path != "deck.yml" {
		t.Errorf("scenes.path: got %q", cfg.Scenes.Path)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SCROLLDECK_NAVIGATION__COOLDOWN", "1s")
	t.Setenv("SCROLLDECK_SERVER__ADDR", "127.0.0.1:9000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Navigation.Cooldown != time.Second {
		t.Errorf("cooldown: got %s, want 1s", cfg.Navigation.Cooldown)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("server.addr: got %q", cfg.Server.Addr)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yml")

	original := DefaultConfig()
	original.Intro.Gather = 300 * time.Millisecond
	original.Marker.Driver = MarkerMemory

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Intro.Gather != original.Intro.Gather {
		t.Errorf("intro.gather: got %s, want %s", loaded.Intro.Gather, original.Intro.Gather)
	}
	if loaded.Marker.Driver != MarkerMemory {
		t.Errorf("marker.driver: got %q", loaded.Marker.Driver)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cooldown", func(c *Config) { c.Navigation.Cooldown = 0 }},
		{"negative wheel threshold", func(c *Config) { c.Navigation.WheelThreshold = -1 }},
		{"negative tolerance", func(c *Config) { c.Probe.Tolerance = -1 }},
		{"zero tolerance", func(c *Config) { c.Probe.Tolerance = 0 }},
		{"gather after total", func(c *Config) { c.Intro.Gather = 3 * time.Second }},
		{"gather equals total", func(c *Config) { c.Intro.Gather = c.Intro.Total }},
		{"unknown driver", func(c *Config) { c.Marker.Driver = "redis" }},
		{"zero cell height", func(c *Config) { c.Terminal.CellHeight = 0 }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMarkerPathDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.MarkerPath(); got != parameter.IntroMarkerDB {
		t.Errorf("sqlite default path: got %q", got)
	}
	cfg.Marker.Driver = MarkerFile
	if got := cfg.MarkerPath(); got != parameter.IntroMarkerFile {
		t.Errorf("file default path: got %q", got)
	}
}

func TestConversions(t *testing.T) {
	cfg := DefaultConfig()
	nav := cfg.NavigationPolicy()
	if nav.Cooldown != cfg.Navigation.Cooldown || nav.TouchThreshold != cfg.Navigation.TouchThreshold {
		t.Errorf("navigation policy: %+v", nav)
	}
	in := cfg.IntroOptions()
	if in.Gather != cfg.Intro.Gather || in.Total != cfg.Intro.Total {
		t.Errorf("intro options: %+v", in)
	}
}
