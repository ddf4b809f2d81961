package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dimensions != 50 {
		t.Errorf("dimensions = %d, want 50", cfg.Dimensions)
	}
	if cfg.Sweeps != 150 {
		t.Errorf("sweeps = %d, want 150", cfg.Sweeps)
	}
	if cfg.Mode != "full" {
		t.Errorf("mode = %q, want full", cfg.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := DefaultConfig()
	cfg.Dimensions = 32
	cfg.Seed = 42
	cfg.Schedule.TStep = 0.2

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Dimensions != 32 || loaded.Seed != 42 {
		t.Errorf("roundtrip lost values: %+v", loaded)
	}
	if loaded.Schedule.TStep != 0.2 {
		t.Errorf("tstep = %g, want 0.2", loaded.Schedule.TStep)
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(path, []byte("mode: metropolis\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestLoadRejectsBadSizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(path, []byte("dimensions: -4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for negative dimensions")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("critical")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.Schedule.TStep != 0.05 {
		t.Errorf("tstep = %g, want 0.05", p.Schedule.TStep)
	}

	// Mutating the copy must not touch the shared table.
	p.Dimensions = 1
	if Presets["critical"].Dimensions == 1 {
		t.Error("preset table mutated through GetPreset copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}

	for _, name := range []string{"quick", "paper", "cold", "hot", "watch"} {
		if GetPreset(name) == nil {
			t.Errorf("missing preset %q", name)
		}
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestBuildSchedule(t *testing.T) {
	cfg := DefaultConfig()
	s, err := cfg.BuildSchedule()
	if err != nil {
		t.Fatalf("build schedule: %v", err)
	}
	if len(s) != 20 {
		t.Errorf("len = %d, want 20", len(s))
	}
}
