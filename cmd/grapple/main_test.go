package main

import (
	"errors"
	"testing"

	"github.com/san-kum/grapple/internal/dynamo"
	"github.com/spf13/cobra"
)

func TestParseSweepParam(t *testing.T) {
	key, vals, err := parseSweepParam("distance=0.8, 1,1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "distance" || len(vals) != 3 || vals[1] != 1 {
		t.Errorf("got %s %v", key, vals)
	}

	for _, bad := range []string{"distance", "=1,2", "distance=", "distance=a,b"} {
		if _, _, err := parseSweepParam(bad); !errors.Is(err, dynamo.ErrInvalidConfig) {
			t.Errorf("%q: expected ErrInvalidConfig, got %v", bad, err)
		}
	}
}

func TestPickFrame(t *testing.T) {
	frames := []dynamo.Frame{
		{Tick: 1, Points: []dynamo.Vec2{{}, {X: 1}}},
		{Tick: 2, Points: []dynamo.Vec2{{}, {X: 2}}},
		{Tick: 3},
	}

	f, err := pickFrame(frames, -1)
	if err != nil || f.Tick != 2 {
		t.Errorf("expected last active frame 2, got %d (%v)", f.Tick, err)
	}
	if f, _ := pickFrame(frames, 2); f.Tick != 3 {
		t.Errorf("expected frame 3, got %d", f.Tick)
	}
	if _, err := pickFrame(frames, 3); err == nil {
		t.Error("expected out of range error")
	}
	if _, err := pickFrame(frames[2:], -1); !errors.Is(err, dynamo.ErrEmptyRun) {
		t.Errorf("expected ErrEmptyRun, got %v", err)
	}
}

func newTestCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	preset, configFile = "", ""
	cmd := &cobra.Command{Use: "test"}
	addScenarioFlags(cmd)
	for k, v := range flags {
		if err := cmd.Flags().Set(k, v); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	return cmd
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	cfg, err := loadConfig(newTestCmd(t, map[string]string{"preset": "ceiling", "iterations": "7"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "ceiling" {
		t.Errorf("expected ceiling preset, got %s", cfg.Name)
	}
	if cfg.Rope.Iterations != 7 {
		t.Errorf("expected iterations override 7, got %d", cfg.Rope.Iterations)
	}
	if cfg.Duration != 4 {
		t.Errorf("unchanged flags must keep preset values, got duration %v", cfg.Duration)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(newTestCmd(t, map[string]string{"preset": "nope"})); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	if _, err := loadConfig(newTestCmd(t, map[string]string{"distance": "-1"})); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
