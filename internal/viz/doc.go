// Package viz renders the orbit animation in the terminal.
//
// The package implements the live rendering surface on Bubble Tea:
//
//   - [Model]: a tea.Model that hosts the frame driver on a fixed tick
//   - [Canvas]: Braille-based pixel canvas with per-cell colour
//   - [Viewport]: maps canvas-plane coordinates to sub-pixels at equal aspect
//   - Theme selection with 5 built-in colour schemes
//
// # Key Bindings
//
//	Q / Ctrl+C - Quit
//
// The animation has no other controls. When the last frame is delivered
// the model restarts the sequence if repeat is enabled, and quits
// otherwise.
package viz
