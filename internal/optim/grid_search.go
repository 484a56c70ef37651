package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/grapple/internal/config"
	"github.com/san-kum/grapple/internal/dynamo"
	"github.com/san-kum/grapple/internal/metrics"
	"github.com/san-kum/grapple/internal/sim"
)

// Trial is one evaluated point of the grid.
type Trial struct {
	Params  map[string]float64
	Metrics map[string]float64
	Score   float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	parallel   int
}

func NewGridSearch(params []string, ranges [][]float64, parallel int) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, parallel: parallel}
}

// Search runs every combination of parameter values on a copy of base and
// returns the trials sorted by metricName, lowest first.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string) ([]Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("%w: %d parameters but %d ranges", dynamo.ErrInvalidConfig, len(g.paramNames), len(g.ranges))
	}

	var combos []map[string]float64
	g.expand(0, make(map[string]float64), &combos)

	jobs := make([]sim.Job, 0, len(combos))
	for _, params := range combos {
		cfg := base.Clone()
		for name, v := range params {
			if err := cfg.SetParam(name, v); err != nil {
				return nil, err
			}
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("params %v: %w", params, err)
		}

		s := sim.New(cfg.Params(), cfg.World.Oracle())
		for _, m := range metrics.Standard() {
			s.AddMetric(m)
		}
		jobs = append(jobs, sim.Job{Sim: s, Driver: &cfg.Scenario})
	}

	results, err := sim.NewEnsemble(jobs, g.parallel).Run(ctx, base.SimConfig())
	if err != nil {
		return nil, err
	}

	trials := make([]Trial, len(combos))
	for i, params := range combos {
		score, ok := results[i].Metrics[metricName]
		if !ok {
			score = math.Inf(1)
		}
		trials[i] = Trial{Params: params, Metrics: results[i].Metrics, Score: score}
	}
	sort.SliceStable(trials, func(i, j int) bool { return trials[i].Score < trials[j].Score })
	return trials, nil
}

func (g *GridSearch) expand(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		c := make(map[string]float64, len(current))
		for k, v := range current {
			c[k] = v
		}
		*out = append(*out, c)
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		g.expand(depth+1, current, out)
	}
	delete(current, name)
}
