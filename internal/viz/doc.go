// Package viz provides terminal-based visualization for the circle
// simulation.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: preset menu that launches the live view
//   - [Model]: live view stepping the simulation at 60 Hz
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	Click - Spawn a body at the pointer
//	S     - Spawn a body at the top of the arena
//	R     - Remove every body
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// The visualization supports recording simulation sessions as GIF animations
// using the G key. Recordings are saved to the current directory.
package viz
