package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// PowerSpectrum returns |X_k|^2 for k = 0..n/2 of a real profile.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	fft := fourier.NewFFT(len(data))
	coeffs := fft.Coefficients(nil, data)

	power := make([]float64, len(coeffs))
	for k, c := range coeffs {
		a := cmplx.Abs(c)
		power[k] = a * a
	}
	return power
}

// HighFrequencyFraction is the share of non-constant spectral power held by
// the upper half of the wavenumbers. It is 0 for a flat profile.
func HighFrequencyFraction(data []float64) float64 {
	power := PowerSpectrum(data)
	if len(power) < 2 {
		return 0
	}

	var total, high float64
	for k := 1; k < len(power); k++ {
		total += power[k]
		if k >= len(power)/2 {
			high += power[k]
		}
	}
	if total == 0 {
		return 0
	}
	return high / total
}

// DominantMode is the wavenumber index with the most power, ignoring the
// mean.
func DominantMode(data []float64) int {
	power := PowerSpectrum(data)
	best := 0
	for k := 1; k < len(power); k++ {
		if best == 0 || power[k] > power[best] {
			best = k
		}
	}
	return best
}
