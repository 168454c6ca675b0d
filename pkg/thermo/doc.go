// Package thermo is the numeric kernel: the extended Antoine vapor-pressure model
// and the grid search that maps a target pressure back to a boiling temperature.
//
// Evaluation never panics. Poles (T = -C) and logarithms of non-positive
// temperatures propagate IEEE non-finite values, and the search functions filter
// them out explicitly.
package thermo
