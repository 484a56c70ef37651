// Package scenario supplies the gameplay side of the rope: owner motion
// and the grapple/release signal.
//
// [Script] replays timed events from configuration; [Manual] is driven
// live by the caller. Both expose their state as a [dynamo.GrappleState]
// and implement the simulator's Driver interface.
package scenario
