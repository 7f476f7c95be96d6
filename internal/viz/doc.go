// Package viz renders assembled machines in the terminal.
//
// Tables are drawn with lipgloss, radial and stage-wise distributions with
// asciigraph, and the meridional flowpath on a braille [Canvas]. [Browse]
// starts a Bubble Tea stage browser.
//
// # Key Bindings
//
//	j/k   - Next/previous stage
//	tab   - Toggle rotor/stator
//	t     - Cycle color themes
//	q     - Quit
package viz
