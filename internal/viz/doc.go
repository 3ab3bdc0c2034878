// Package viz renders cross mapping results in the terminal.
//
//   - [RenderCurves]: asciigraph plot of rho against library length
//   - [RenderTable], [RenderSkills]: lipgloss tables
//   - [RenderManifold]: Braille scatter of a shadow manifold projection
//   - [WatchModel]: Bubble Tea view fed by a running scan
//
// # Key Bindings
//
//	T - Cycle color themes
//	Q - Quit
package viz
