package config

import (
	"path/filepath"
	"testing"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/timeline"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DefaultView != timeline.ViewWeek {
		t.Errorf("expected DefaultView=week, got %s", cfg.DefaultView)
	}
	if cfg.DefaultRowCount != 20 {
		t.Errorf("expected DefaultRowCount=20, got %d", cfg.DefaultRowCount)
	}
	if cfg.Weights().Sum() != 115 {
		t.Errorf("expected default weights sum 115, got %v", cfg.Weights().Sum())
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("BAYBOARD_VIEW", "")
	t.Setenv("BAYBOARD_ROW_COUNT", "")

	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.DefaultView = timeline.ViewMonth
	cfg.DefaultRowCount = 12

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DefaultView != timeline.ViewMonth {
		t.Errorf("expected view=month, got %s", loaded.DefaultView)
	}
	if loaded.DefaultRowCount != 12 {
		t.Errorf("expected row count 12, got %d", loaded.DefaultRowCount)
	}
}

func TestConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("BAYBOARD_VIEW", "")
	t.Setenv("BAYBOARD_ROW_COUNT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultView != timeline.ViewWeek {
		t.Errorf("expected default view, got %s", cfg.DefaultView)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BAYBOARD_VIEW", "day")
	t.Setenv("BAYBOARD_ROW_COUNT", "8")
	t.Setenv("BAYBOARD_VERBOSE", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultView != timeline.ViewDay {
		t.Errorf("expected view=day, got %s", cfg.DefaultView)
	}
	if cfg.DefaultRowCount != 8 {
		t.Errorf("expected row count 8, got %d", cfg.DefaultRowCount)
	}
	if !cfg.Logging.Verbose {
		t.Error("expected verbose logging")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultView = "fortnight"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown view mode")
	}

	cfg = DefaultConfig()
	cfg.DefaultRowCount = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero row count")
	}
}
