// Package physics holds the rope's point chain.
//
// A [Chain] is a fixed-length sequence of [dynamo.Point] values. The tick
// pipeline (integrators, collision, constraint) mutates it in place through
// [Chain.Points]; renderers read [Chain.Positions] copies.
package physics
