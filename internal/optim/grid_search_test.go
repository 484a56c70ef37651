package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/grapple/internal/config"
	"github.com/san-kum/grapple/internal/dynamo"
)

func TestGridSearchMoreIterationsStretchLess(t *testing.T) {
	base := config.DefaultConfig()
	base.Duration = 1

	g := NewGridSearch([]string{"iterations"}, [][]float64{{1, 3, 20}}, 0)
	trials, err := g.Search(context.Background(), base, "stretch")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(trials) != 3 {
		t.Fatalf("expected 3 trials, got %d", len(trials))
	}
	if trials[0].Params["iterations"] != 20 {
		t.Errorf("expected 20 iterations to stretch least, got %v", trials[0].Params)
	}
	for i := 1; i < len(trials); i++ {
		if trials[i].Score < trials[i-1].Score {
			t.Errorf("trials not sorted: %v", trials)
		}
	}
}

func TestGridSearchCartesianProduct(t *testing.T) {
	base := config.DefaultConfig()
	base.Duration = 0.1

	g := NewGridSearch([]string{"iterations", "distance"}, [][]float64{{1, 2}, {0.5, 1, 1.5}}, 2)
	trials, err := g.Search(context.Background(), base, "sag")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(trials) != 6 {
		t.Errorf("expected 6 trials, got %d", len(trials))
	}
}

func TestGridSearchRejectsBadParams(t *testing.T) {
	base := config.DefaultConfig()

	tests := []struct {
		name   string
		params []string
		ranges [][]float64
	}{
		{"mismatch", []string{"iterations"}, nil},
		{"unknown", []string{"wind"}, [][]float64{{1}}},
		{"invalid value", []string{"distance"}, [][]float64{{-1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGridSearch(tt.params, tt.ranges, 0).Search(context.Background(), base, "stretch")
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
