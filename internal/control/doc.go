// Package control derives the rope's endpoints from gameplay input.
//
// [Endpoints] owns the anchor (owner position plus launch offset), the live
// rope end and its target. A Grappled intent extends the end toward the
// grapple point at ExtendSpeed; Released pulls it back to the anchor at
// RetractSpeed and zeroes the rope length once within RetractThreshold.
package control
