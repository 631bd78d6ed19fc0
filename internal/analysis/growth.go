package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// GrowthRate fits log(peak) = a + rate*t by least squares over the samples
// whose peak is finite and positive. ok is false with fewer than two usable
// samples. A positive rate means exponential blow-up; exp(rate) is the
// amplification per time level.
func GrowthRate(times, peaks []float64) (rate float64, ok bool) {
	xs := make([]float64, 0, len(peaks))
	ys := make([]float64, 0, len(peaks))
	for i, p := range peaks {
		if i >= len(times) || !(p > 0) || math.IsInf(p, 0) {
			continue
		}
		xs = append(xs, times[i])
		ys = append(ys, math.Log(p))
	}
	if len(xs) < 2 {
		return 0, false
	}
	_, rate = stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(rate) {
		return 0, false
	}
	return rate, true
}
