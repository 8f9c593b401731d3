// Package viz draws a particle network in the terminal.
//
// [TermSurface] adapts a braille [Canvas] to the particle drawing surface,
// mapping page pixels to sub-cell dots. [Live] wraps a field in a Bubble Tea
// program:
//
//	Space - Pause/Resume
//	R     - Regenerate particles at the current size
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
//
// Mouse motion over the canvas moves the interaction particle; leaving the
// canvas or the terminal losing focus removes it.
package viz
