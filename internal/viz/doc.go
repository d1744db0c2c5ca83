// Package viz renders trajectories in the terminal.
//
// Two static renderers cover the common cases: [PlotStates] draws one
// asciigraph chart per state component, and [PhasePlot] draws a braille
// phase portrait. [Model] is a bubbletea program that steps a simulation
// live with pause, reset, and parameter tuning.
package viz
