package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/grapple/internal/dynamo"
	"github.com/san-kum/grapple/internal/environment"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Rope.Points != 32 {
		t.Errorf("expected 32 points, got %d", cfg.Rope.Points)
	}
	if cfg.Rope.Iterations != 3 {
		t.Errorf("expected 3 iterations, got %d", cfg.Rope.Iterations)
	}
	if cfg.Rope.Gravity != dynamo.V(0, 10) {
		t.Errorf("unexpected gravity %v", cfg.Rope.Gravity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"one point", func(c *Config) { c.Rope.Points = 1 }},
		{"zero distance", func(c *Config) { c.Rope.Distance = 0 }},
		{"negative speed", func(c *Config) { c.Rope.RetractSpeed = -1 }},
		{"negative threshold", func(c *Config) { c.Rope.RetractThreshold = -0.5 }},
		{"zero iterations", func(c *Config) { c.Rope.Iterations = 0 }},
		{"flat box", func(c *Config) {
			c.World.Boxes = append(c.World.Boxes, environment.BoxSpec{HalfWidth: 1})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rope.yaml")
	data := []byte(`
name: custom
rope:
  points: 8
  distance: 0.5
  gravity: {x: 0, y: 20}
scenario:
  owner: {x: 1, y: 2}
  events:
    - {at: 1, action: release}
    - {at: 0, action: grapple, point: {x: 4, y: 0}}
world:
  edges:
    - {a: {x: 0, y: 5}, b: {x: 10, y: 5}}
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Name != "custom" || cfg.Rope.Points != 8 || cfg.Rope.Distance != 0.5 {
		t.Errorf("rope section not applied: %+v", cfg.Rope)
	}
	if cfg.Rope.Gravity != dynamo.V(0, 20) {
		t.Errorf("gravity = %v", cfg.Rope.Gravity)
	}
	if cfg.Rope.Iterations != 3 {
		t.Errorf("unset iterations should keep the default, got %d", cfg.Rope.Iterations)
	}
	if cfg.Scenario.Events[0].Action != "grapple" {
		t.Errorf("events should be sorted by time, got %+v", cfg.Scenario.Events)
	}
	if len(cfg.World.Edges) != 1 {
		t.Errorf("expected one world edge, got %d", len(cfg.World.Edges))
	}
	if p := cfg.Params(); p.Anchor != dynamo.V(1, 1) {
		t.Errorf("anchor = %v, want owner plus default offset (1, 1)", p.Anchor)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("ceiling")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Name != "ceiling" || len(loaded.World.Boxes) != 1 {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("retract")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Rope.RetractSpeed != 8 {
		t.Errorf("expected retract speed 8, got %f", cfg.Rope.RetractSpeed)
	}

	cfg.Scenario.Events = nil
	if again := GetPreset("retract"); len(again.Scenario.Events) == 0 {
		t.Error("GetPreset returned shared state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.SetParam("iterations", 7); err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetParam("gravity", 4); err != nil {
		t.Fatal(err)
	}
	if cfg.Rope.Iterations != 7 || cfg.Rope.Gravity.Y != 4 {
		t.Errorf("params not applied: %+v", cfg.Rope)
	}
	if err := cfg.SetParam("wind", 1); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if got := cfg.GetParams()["iterations"]; got != 7 {
		t.Errorf("GetParams iterations = %v", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := GetPreset("slack")
	c := cfg.Clone()
	c.World.Polylines[0][0] = dynamo.V(99, 99)
	c.Scenario.Events[0].At = 42

	if cfg.World.Polylines[0][0] == dynamo.V(99, 99) || cfg.Scenario.Events[0].At == 42 {
		t.Error("Clone shares slices with the original")
	}
}
