package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/grapple/internal/dynamo"
)

func TestSwaySignal(t *testing.T) {
	frames := []dynamo.Frame{
		{Points: []dynamo.Vec2{dynamo.V(0, 0), dynamo.V(1, 0.5), dynamo.V(2, 0)}},
		{},
		{Points: []dynamo.Vec2{dynamo.V(0, 0), dynamo.V(1, -0.25), dynamo.V(2, 0)}},
	}

	got := SwaySignal(frames)
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if math.Abs(got[0]-0.5) > 1e-12 || math.Abs(got[1]+0.25) > 1e-12 {
		t.Errorf("SwaySignal() = %v, want [0.5 -0.25]", got)
	}
}

func TestDominantFrequency(t *testing.T) {
	const (
		n  = 256
		dt = 1.0 / 64.0
		f  = 4.0
	)
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 3 + math.Sin(2*math.Pi*f*float64(i)*dt)
	}

	if got := DominantFrequency(signal, dt); math.Abs(got-f) > 1e-9 {
		t.Errorf("DominantFrequency() = %v, want %v", got, f)
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	if got := DominantFrequency(nil, 0.1); got != 0 {
		t.Errorf("empty signal: got %v", got)
	}
	if got := DominantFrequency([]float64{1, 1, 1, 1}, 0.1); got != 0 {
		t.Errorf("flat signal: got %v", got)
	}
}

func TestTrack(t *testing.T) {
	frames := []dynamo.Frame{
		{Points: []dynamo.Vec2{dynamo.V(0, 0), dynamo.V(1, 1)}},
		{},
		{Points: []dynamo.Vec2{dynamo.V(0, 0), dynamo.V(2, 2)}},
	}

	got := Track(frames, -1)
	if len(got) != 2 || got[0] != dynamo.V(1, 1) || got[1] != dynamo.V(2, 2) {
		t.Errorf("Track(-1) = %v", got)
	}
	if got := Track(frames, 5); len(got) != 0 {
		t.Errorf("out of range index should yield nothing, got %v", got)
	}
}
