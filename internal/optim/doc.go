// Package optim sweeps rope parameters and ranks them by a run metric.
package optim
