// Package dynamo provides the core value types shared by the rope pipeline.
//
//   - [Vec2]: 2D vector math
//   - [Point]: Verlet particle (current and previous position)
//   - [Oracle]: environment raycast provider
//   - [GrappleState] and [Intent]: gameplay signal driving the rope ends
//   - [Frame]: renderer-facing output of one tick
//
// # Thread Safety
//
// Nothing in this package synchronizes. A simulation is owned by one
// goroutine; renderers receive [Frame] copies.
package dynamo
