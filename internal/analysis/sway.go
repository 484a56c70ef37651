package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"github.com/san-kum/grapple/internal/dynamo"
)

// SwaySignal returns, for every active frame, the signed distance of the
// chain's middle point from the start-end chord. Inactive frames are
// skipped.
func SwaySignal(frames []dynamo.Frame) []float64 {
	out := make([]float64, 0, len(frames))
	for _, f := range frames {
		if len(f.Points) < 3 {
			continue
		}
		a, b := f.Points[0], f.Points[len(f.Points)-1]
		mid := f.Points[len(f.Points)/2]
		chord := b.Sub(a)
		l := chord.Length()
		if l == 0 {
			out = append(out, mid.DistanceTo(a))
			continue
		}
		out = append(out, chord.Cross(mid.Sub(a))/l)
	}
	return out
}

// Spectrum returns the magnitude of the first half of the Hann-windowed
// FFT of signal after removing its mean.
func Spectrum(signal []float64) []float64 {
	if len(signal) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range signal {
		mean += v
	}
	mean /= float64(len(signal))

	x := make([]float64, len(signal))
	for i, v := range signal {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	coeffs := fft.FFTReal(x)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC
// bin of signal sampled every dt seconds, or 0 when there is none.
func DominantFrequency(signal []float64, dt float64) float64 {
	ps := Spectrum(signal)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if ps[best] == 0 {
		return 0
	}
	return float64(best) / (float64(len(signal)) * dt)
}

// Track returns the path of chain point idx over the active frames.
// Negative idx counts from the end.
func Track(frames []dynamo.Frame, idx int) []dynamo.Vec2 {
	out := make([]dynamo.Vec2, 0, len(frames))
	for _, f := range frames {
		n := len(f.Points)
		if n == 0 {
			continue
		}
		i := idx
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			continue
		}
		out = append(out, f.Points[i])
	}
	return out
}
