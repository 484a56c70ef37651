// Package viz renders rope frames in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Menu]: preset picker with parameter tuning
//   - [Model]: live simulator view, scripted or steered from the keyboard
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [RenderFrame]: one-shot rendering of a recorded frame
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	N     - Single step while paused
//	R     - Reset to initial state
//	G     - Grapple at the cursor (manual mode)
//	X     - Release (manual mode)
//	P     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// The live view can record its canvas as a GIF animation with the P key.
// Recordings are saved to grapple.gif in the current directory.
package viz
