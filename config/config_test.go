package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Grid.Size != 100 {
		t.Errorf("expected grid size 100, got %d", cfg.Grid.Size)
	}
	if cfg.Physics.Damping != 50.0 {
		t.Errorf("expected damping 50, got %f", cfg.Physics.Damping)
	}
	if cfg.Camera.Position != [3]float64{50, 50, 10} {
		t.Errorf("expected camera at (50, 50, 10), got %v", cfg.Camera.Position)
	}
	if cfg.Interaction.ClickTarget {
		t.Error("targeting should default to off")
	}
	if cfg.Interaction.UnprojectUpScale != 1.0 {
		t.Errorf("expected unproject up scale 1.0, got %f", cfg.Interaction.UnprojectUpScale)
	}
	if !cfg.Render.AdditiveBlend {
		t.Error("additive blending should default to on")
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Derived.Damping32 != 50 {
		t.Errorf("expected Damping32 50, got %f", cfg.Derived.Damping32)
	}
	if cfg.Derived.ScreenW32 != 1280 || cfg.Derived.ScreenH32 != 720 {
		t.Errorf("expected screen 1280x720, got %fx%f", cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)
	}
	if cfg.Derived.ClearColor32 != [4]float32{0.2, 0.2, 0.2, 1.0} {
		t.Errorf("unexpected clear color %v", cfg.Derived.ClearColor32)
	}
	// 10 seconds at 60fps
	if cfg.Derived.StatsWindowFr != 600 {
		t.Errorf("expected stats window of 600 frames, got %d", cfg.Derived.StatsWindowFr)
	}
}

func TestLoadOverridesOnlyPresentKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("grid:\n  size: 8\ninteraction:\n  click_target: true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}

	if cfg.Grid.Size != 8 {
		t.Errorf("expected grid size 8, got %d", cfg.Grid.Size)
	}
	if !cfg.Interaction.ClickTarget {
		t.Error("expected click_target override to apply")
	}
	// Untouched sections keep their defaults
	if cfg.Physics.Damping != 50.0 {
		t.Errorf("expected default damping to survive override, got %f", cfg.Physics.Damping)
	}
	if cfg.Screen.Width != 1280 {
		t.Errorf("expected default screen width to survive override, got %d", cfg.Screen.Width)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero grid", "grid:\n  size: 0\n"},
		{"zero damping", "physics:\n  damping: 0\n"},
		{"bad clip planes", "camera:\n  near: 10\n  far: 1\n"},
		{"bad screen", "screen:\n  width: -1\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Grid.Size = 12

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if reloaded.Grid.Size != 12 {
		t.Errorf("expected grid size 12 after roundtrip, got %d", reloaded.Grid.Size)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected Cfg() to panic before Init()")
		}
	}()
	Cfg()
}
