// Package analysis diagnoses recorded runs: the spatial power spectrum of a
// profile and the exponential growth rate of the field's peak.
//
// A scheme run past its stability bound blows up at the grid scale first, so
// an unstable run shows a positive growth rate together with most of its
// spectral power in the upper half of the wavenumbers:
//
//	rate, _ := analysis.GrowthRate(times, peaks)
//	hf := analysis.HighFrequencyFraction(profile)
package analysis
