// Package environment provides collision oracles for the rope.
//
// [World] answers first-hit segment queries against static box2d shapes
// (edges, solid boxes, open polylines). [Spec] is its YAML/JSON form.
// [Empty] never hits; [Counting] instruments another oracle.
package environment
