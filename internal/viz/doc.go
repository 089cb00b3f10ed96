// Package viz is the terminal view of a dots session.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: polls the session for frames and forwards keys and mouse hover
//   - [Canvas]: Braille-based pixel canvas with per-cell color compositing
//   - Three color themes, cycled with T
//
// # Key Bindings
//
//	Space - Go/Stop periodic painting
//	P     - Paint one batch
//	R     - Reset the canvas
//	T     - Cycle color themes
//	S     - Save the current frame as SVG
//	?     - Toggle full help
//	Q     - Quit
//
// Moving the mouse over a dot shows its color name, hex and RGB values.
package viz
