package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/grapple/internal/collision"
	"github.com/san-kum/grapple/internal/constraint"
	"github.com/san-kum/grapple/internal/control"
	"github.com/san-kum/grapple/internal/dynamo"
	"github.com/san-kum/grapple/internal/integrators"
	"github.com/san-kum/grapple/internal/physics"
)

// Simulator runs the per-tick rope pipeline: endpoints, integrate,
// collide, relax. It is not safe for concurrent use; renderers read the
// copies returned by Points or Frame.
type Simulator struct {
	params     Params
	chain      *physics.Chain
	ends       *control.Endpoints
	integrator *integrators.Verlet
	resolver   *collision.Resolver
	solver     *constraint.Solver
	metrics    []dynamo.Metric
	observers  []dynamo.Observer

	tick     int
	t        float64
	contacts int
}

func New(p Params, oracle dynamo.Oracle) *Simulator {
	ends := control.NewEndpoints(p.Anchor, p.ExtendSpeed, p.RetractSpeed)
	if p.RetractThreshold > 0 {
		ends.RetractThreshold = p.RetractThreshold
	}
	return &Simulator{
		params:     p,
		chain:      physics.NewChain(p.Points, p.Anchor),
		ends:       ends,
		integrator: integrators.NewVerlet(p.Gravity),
		resolver:   collision.NewResolver(oracle),
		solver:     constraint.NewSolver(p.Distance, p.Iterations),
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Tick advances the rope by dt. A non-positive dt is a no-op.
func (s *Simulator) Tick(in dynamo.Input, dt float64) {
	if dt <= 0 {
		return
	}

	s.ends.Update(in, dt)
	s.tick++
	s.t += dt
	s.contacts = 0

	if !s.ends.Active() {
		s.chain.Collapse(s.ends.Start())
		return
	}

	points := s.chain.Points()
	s.chain.Pin(s.ends.Start(), s.ends.End())
	s.integrator.Step(points, dt)
	s.contacts = s.resolver.Resolve(points)
	s.solver.Solve(points)
}

func (s *Simulator) Active() bool { return s.ends.Active() }

func (s *Simulator) RopeLength() float64 { return s.ends.Length() }

func (s *Simulator) Start() dynamo.Vec2 { return s.ends.Start() }

func (s *Simulator) End() dynamo.Vec2 { return s.ends.End() }

func (s *Simulator) Time() float64 { return s.t }

func (s *Simulator) Params() Params { return s.params }

// Chain exposes the underlying chain for inspection.
func (s *Simulator) Chain() *physics.Chain { return s.chain }

// Points returns the renderable polyline, or nothing when the rope is
// retracted.
func (s *Simulator) Points() []dynamo.Vec2 {
	if !s.ends.Active() {
		return nil
	}
	return s.chain.Positions()
}

func (s *Simulator) Frame() dynamo.Frame {
	return dynamo.Frame{
		Tick:       s.tick,
		Time:       s.t,
		RopeLength: s.ends.Length(),
		Contacts:   s.contacts,
		Points:     s.Points(),
	}
}

// Run ticks the simulator at a fixed timestep for cfg.Duration, pulling
// input from d. Cancellation is checked between ticks only.
func (s *Simulator) Run(ctx context.Context, d Driver, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 1e-9)
	result := &dynamo.Result{
		Frames:  make([]dynamo.Frame, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, &dynamo.SimulationError{Tick: s.tick, Time: s.t, Wrapped: fmt.Errorf("%w: %v", dynamo.ErrContextCanceled, ctx.Err())}
		default:
		}

		s.Tick(d.Input(s.t), cfg.Dt)
		f := s.Frame()

		if cfg.ValidateState && !framesValid(f) {
			result.Errors = append(result.Errors, dynamo.SimError{Time: s.t, Tick: s.tick, Message: "invalid rope point (NaN/Inf)"})
			break
		}

		for _, m := range s.metrics {
			m.Observe(f, s.params.Distance)
		}
		for _, obs := range s.observers {
			obs.OnTick(f)
		}

		result.Frames = append(result.Frames, f)
		result.TicksTaken++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback ticks until the duration elapses or callback returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, d Driver, cfg dynamo.Config, callback func(dynamo.Frame) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	for s.t < cfg.Duration {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		s.Tick(d.Input(s.t), cfg.Dt)
		if !callback(s.Frame()) {
			return nil
		}
	}

	return nil
}

func framesValid(f dynamo.Frame) bool {
	for _, p := range f.Points {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

func validateConfig(cfg dynamo.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Duration)
	}
	return nil
}
