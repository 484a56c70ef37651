package config

import (
	"sort"

	"github.com/san-kum/grapple/internal/dynamo"
	"github.com/san-kum/grapple/internal/environment"
	"github.com/san-kum/grapple/internal/scenario"
)

var Presets = map[string]func() *Config{
	"swing": func() *Config {
		c := DefaultConfig()
		c.Name = "swing"
		c.Duration = 6
		c.Scenario.Velocity = dynamo.V(3, 0)
		c.Scenario.Events = []scenario.Event{
			{At: 0, Action: scenario.ActionGrapple, Point: dynamo.V(14, -14)},
		}
		return c
	},
	"retract": func() *Config {
		c := DefaultConfig()
		c.Name = "retract"
		c.Duration = 3
		c.Rope.RetractSpeed = 8
		c.Scenario.Events = []scenario.Event{
			{At: 0, Action: scenario.ActionGrapple, Point: dynamo.V(16, 0)},
			{At: 1, Action: scenario.ActionRelease},
		}
		return c
	},
	"ceiling": func() *Config {
		c := DefaultConfig()
		c.Name = "ceiling"
		c.Duration = 4
		c.Scenario.Events = []scenario.Event{
			{At: 0, Action: scenario.ActionGrapple, Point: dynamo.V(18, -10)},
		}
		c.World = environment.Spec{
			Edges: []environment.EdgeSpec{{A: dynamo.V(-10, 4), B: dynamo.V(40, 4)}},
			Boxes: []environment.BoxSpec{{Center: dynamo.V(9, -3), HalfWidth: 1.5, HalfHeight: 1.5}},
		}
		return c
	},
	"slack": func() *Config {
		c := DefaultConfig()
		c.Name = "slack"
		c.Duration = 5
		c.Rope.Distance = 1.2
		c.Rope.ExtendSpeed = 6
		c.Scenario.Events = []scenario.Event{
			{At: 0, Action: scenario.ActionGrapple, Point: dynamo.V(12, 0)},
		}
		c.World = environment.Spec{
			Polylines: [][]dynamo.Vec2{{dynamo.V(-5, 6), dynamo.V(6, 9), dynamo.V(20, 6)}},
		}
		return c
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
