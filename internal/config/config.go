package config

import (
	"fmt"
	"os"

	"github.com/san-kum/grapple/internal/constraint"
	"github.com/san-kum/grapple/internal/control"
	"github.com/san-kum/grapple/internal/dynamo"
	"github.com/san-kum/grapple/internal/environment"
	"github.com/san-kum/grapple/internal/scenario"
	"github.com/san-kum/grapple/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 1.0 / 60.0
	DefaultDuration = 5.0
	DefaultDistance = 1.0
	DefaultGravityY = 10.0
)

type Config struct {
	Name     string           `yaml:"name"`
	Dt       float64          `yaml:"dt"`
	Duration float64          `yaml:"duration"`
	Rope     RopeConfig       `yaml:"rope"`
	Scenario scenario.Script  `yaml:"scenario"`
	World    environment.Spec `yaml:"world"`
}

type RopeConfig struct {
	Points           int         `yaml:"points"`
	Distance         float64     `yaml:"distance"`
	Gravity          dynamo.Vec2 `yaml:"gravity"`
	ExtendSpeed      float64     `yaml:"extend_speed"`
	RetractSpeed     float64     `yaml:"retract_speed"`
	RetractThreshold float64     `yaml:"retract_threshold"`
	Iterations       int         `yaml:"iterations"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "default",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Rope: RopeConfig{
			Points:           sim.DefaultPoints,
			Distance:         DefaultDistance,
			Gravity:          dynamo.V(0, DefaultGravityY),
			ExtendSpeed:      control.DefaultExtendSpeed,
			RetractSpeed:     control.DefaultRetractSpeed,
			RetractThreshold: control.DefaultRetractThreshold,
			Iterations:       constraint.DefaultIterations,
		},
		Scenario: scenario.Script{
			LaunchOffset: dynamo.V(0, -1),
			Events: []scenario.Event{
				{At: 0, Action: scenario.ActionGrapple, Point: dynamo.V(20, -12)},
				{At: 3, Action: scenario.ActionRelease},
			},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the pipeline cannot run with and sorts the
// scenario's events.
func (c *Config) Validate() error {
	r := c.Rope
	switch {
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, c.Dt)
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrInvalidConfig, c.Duration)
	case r.Points < 2:
		return fmt.Errorf("%w: rope needs at least 2 points, got %d", dynamo.ErrInvalidConfig, r.Points)
	case r.Distance <= 0:
		return fmt.Errorf("%w: constraint distance must be positive, got %f", dynamo.ErrInvalidConfig, r.Distance)
	case r.ExtendSpeed < 0 || r.RetractSpeed < 0:
		return fmt.Errorf("%w: speeds must be non-negative", dynamo.ErrInvalidConfig)
	case r.RetractThreshold < 0:
		return fmt.Errorf("%w: retract threshold must be non-negative", dynamo.ErrInvalidConfig)
	case r.Iterations < 1:
		return fmt.Errorf("%w: iterations must be at least 1, got %d", dynamo.ErrInvalidConfig, r.Iterations)
	}
	for i, b := range c.World.Boxes {
		if b.HalfWidth <= 0 || b.HalfHeight <= 0 {
			return fmt.Errorf("%w: box %d needs positive half extents", dynamo.ErrInvalidConfig, i)
		}
	}
	return c.Scenario.Validate()
}

// Params converts the rope section into simulator parameters anchored at
// the scenario's starting launch point.
func (c *Config) Params() sim.Params {
	return sim.Params{
		Points:           c.Rope.Points,
		Distance:         c.Rope.Distance,
		Gravity:          c.Rope.Gravity,
		ExtendSpeed:      c.Rope.ExtendSpeed,
		RetractSpeed:     c.Rope.RetractSpeed,
		RetractThreshold: c.Rope.RetractThreshold,
		Iterations:       c.Rope.Iterations,
		Anchor:           c.Scenario.OwnerAt(0).Add(c.Scenario.LaunchOffset),
	}
}

func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{Dt: c.Dt, Duration: c.Duration, ValidateState: true}
}

// Clone returns a deep copy safe to mutate.
func (c *Config) Clone() *Config {
	out := *c
	out.Scenario.Events = append([]scenario.Event(nil), c.Scenario.Events...)
	out.World.Edges = append([]environment.EdgeSpec(nil), c.World.Edges...)
	out.World.Boxes = append([]environment.BoxSpec(nil), c.World.Boxes...)
	out.World.Polylines = make([][]dynamo.Vec2, len(c.World.Polylines))
	for i, pl := range c.World.Polylines {
		out.World.Polylines[i] = append([]dynamo.Vec2(nil), pl...)
	}
	return &out
}

// SetParam overrides a single tunable by name, as used by sweeps.
func (c *Config) SetParam(name string, value float64) error {
	switch name {
	case "iterations":
		c.Rope.Iterations = int(value)
	case "distance":
		c.Rope.Distance = value
	case "gravity":
		c.Rope.Gravity.Y = value
	case "extend_speed":
		c.Rope.ExtendSpeed = value
	case "retract_speed":
		c.Rope.RetractSpeed = value
	case "points":
		c.Rope.Points = int(value)
	default:
		return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrInvalidConfig, name)
	}
	return nil
}

// GetParams lists the tunables SetParam accepts with their current values.
func (c *Config) GetParams() map[string]float64 {
	return map[string]float64{
		"iterations":    float64(c.Rope.Iterations),
		"distance":      c.Rope.Distance,
		"gravity":       c.Rope.Gravity.Y,
		"extend_speed":  c.Rope.ExtendSpeed,
		"retract_speed": c.Rope.RetractSpeed,
		"points":        float64(c.Rope.Points),
	}
}
