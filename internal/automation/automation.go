package automation

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/grapple/internal/config"
	"github.com/san-kum/grapple/internal/dynamo"
	"github.com/san-kum/grapple/internal/metrics"
	"github.com/san-kum/grapple/internal/scenario"
	"github.com/san-kum/grapple/internal/sim"
	"gopkg.in/yaml.v3"
)

// Batch is a list of scenario runs executed in order.
type Batch struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step names one scenario by preset or config file, with optional
// tunable overrides applied through config.SetParam.
type Step struct {
	Preset    string             `yaml:"preset,omitempty"`
	Config    string             `yaml:"config,omitempty"`
	Overrides map[string]float64 `yaml:"overrides,omitempty"`
	SaveAs    string             `yaml:"save_as,omitempty"`
}

// StepResult pairs a step's resolved config with its run.
type StepResult struct {
	Config *config.Config
	Result *dynamo.Result
}

// LoadBatch loads a batch from a YAML file
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Resolve builds the validated config for a step.
func (s Step) Resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Config != "":
		loaded, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownPreset, s.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	for k, v := range s.Overrides {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg, cfg.Validate()
}

// RunBatch executes all steps in order and stops at the first failure,
// returning the steps completed so far.
func RunBatch(ctx context.Context, b *Batch) ([]StepResult, error) {
	results := make([]StepResult, 0, len(b.Steps))

	for i, step := range b.Steps {
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		log.Printf("batch %s: step %d/%d %s", b.Name, i+1, len(b.Steps), cfg.Name)

		s := sim.New(cfg.Params(), cfg.World.Oracle())
		for _, m := range metrics.Standard() {
			s.AddMetric(m)
		}

		result, err := s.Run(ctx, &cfg.Scenario, cfg.SimConfig())
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, StepResult{Config: cfg, Result: result})
	}

	return results, nil
}

// MonteCarloConfig jitters every grapple target of Base by up to
// Perturbation on each axis.
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Parallel     int
	Seed         int64
}

// MonteCarloResult holds one perturbed trial.
type MonteCarloResult struct {
	TrialID int
	Targets []dynamo.Vec2
	Metrics map[string]float64
	Stable  bool // every point stayed finite and no segment stretched past a full rest length
}

// RunMonteCarlo executes the perturbed trials concurrently.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("%w: need at least one trial", dynamo.ErrInvalidConfig)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	jobs := make([]sim.Job, cfg.NumTrials)
	targets := make([][]dynamo.Vec2, cfg.NumTrials)
	finite := make([]*finiteWatch, cfg.NumTrials)

	for trial := range jobs {
		c := cfg.Base.Clone()
		for i, e := range c.Scenario.Events {
			if e.Action != scenario.ActionGrapple {
				continue
			}
			jitter := dynamo.V((rng.Float64()-0.5)*2*cfg.Perturbation, (rng.Float64()-0.5)*2*cfg.Perturbation)
			c.Scenario.Events[i].Point = e.Point.Add(jitter)
			targets[trial] = append(targets[trial], c.Scenario.Events[i].Point)
		}

		s := sim.New(c.Params(), c.World.Oracle())
		for _, m := range metrics.Standard() {
			s.AddMetric(m)
		}
		finite[trial] = &finiteWatch{ok: true}
		s.AddObserver(finite[trial])
		jobs[trial] = sim.Job{Sim: s, Driver: &c.Scenario}
	}

	results, err := sim.NewEnsemble(jobs, cfg.Parallel).Run(ctx, cfg.Base.SimConfig())
	if err != nil {
		return nil, err
	}

	out := make([]MonteCarloResult, cfg.NumTrials)
	for i, r := range results {
		out[i] = MonteCarloResult{
			TrialID: i,
			Targets: targets[i],
			Metrics: r.Metrics,
			Stable:  finite[i].ok && len(r.Errors) == 0 && r.Metrics["max_stretch"] <= cfg.Base.Rope.Distance,
		}
	}
	return out, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

// finiteWatch records whether any frame ever held a non-finite point.
type finiteWatch struct{ ok bool }

func (w *finiteWatch) OnTick(f dynamo.Frame) {
	for _, p := range f.Points {
		if !p.IsValid() {
			w.ok = false
			return
		}
	}
}
