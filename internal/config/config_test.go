package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timer.DefaultDuration != 25*time.Minute {
		t.Fatalf("expected 25m default, got %v", cfg.Timer.DefaultDuration)
	}
	if len(cfg.Timer.Presets) != 4 {
		t.Fatalf("expected 4 presets, got %d", len(cfg.Timer.Presets))
	}
	if !cfg.Database.Encrypted {
		t.Fatalf("expected encryption on by default")
	}
	if cfg.Tracker.Exclusive {
		t.Fatalf("expected concurrent tasks by default")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "p.db")
	cfg.Database.Encrypted = false
	cfg.Timer.DefaultDuration = 50 * time.Minute
	cfg.Tracker.Exclusive = true
	cfg.Timer.Presets = []PresetConfig{{Label: "Sprint", Duration: 90 * time.Second}}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Timer.DefaultDuration != 50*time.Minute {
		t.Fatalf("expected 50m, got %v", loaded.Timer.DefaultDuration)
	}
	if !loaded.Tracker.Exclusive || loaded.Database.Encrypted {
		t.Fatalf("flags not round-tripped: %+v", loaded)
	}
	presets := loaded.Presets()
	if len(presets) != 1 || presets[0].Label != "Sprint" || presets[0].Duration != 90*time.Second {
		t.Fatalf("unexpected presets: %+v", presets)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tracker:\n  exclusive: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Tracker.Exclusive {
		t.Fatalf("expected exclusive from file")
	}
	if cfg.Timer.DefaultDuration != 25*time.Minute {
		t.Fatalf("expected default duration kept, got %v", cfg.Timer.DefaultDuration)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timer:\n  default_duration: -5m\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}
