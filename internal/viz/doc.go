// Package viz formats simulation results for the terminal: a styled
// stability and metrics report, sparklines of per-frame peaks and asciigraph
// line plots of field profiles. Progress is a small bubbletea model fed by
// a sim observer while a run is in flight.
//
// Everything here returns strings; the CLI decides where they go.
package viz
