// Package analysis inspects recorded rope runs.
//
//   - [SwaySignal]: midpoint offset from the start-end chord per tick
//   - [Spectrum] and [DominantFrequency]: FFT of a sway signal
//   - [Track]: path of a single chain point over time
package analysis
