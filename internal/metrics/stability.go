package metrics

import "github.com/san-kum/pdesim/internal/fdm"

// Stability is the fraction of observed frames whose magnitude stays within
// threshold. 1 means the run never left the band.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(h *fdm.History) {
	s.samples++
	// NaN compares false, so test the complement.
	if !(h.Current().MaxAbs() <= s.threshold) {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Divergence records the first frame whose magnitude exceeds threshold, or
// -1 while the field stays bounded.
type Divergence struct {
	threshold float64
	first     int
}

func NewDivergence(threshold float64) *Divergence {
	return &Divergence{threshold: threshold, first: -1}
}

func (d *Divergence) Name() string { return "divergence_frame" }

func (d *Divergence) Observe(h *fdm.History) {
	if d.first >= 0 {
		return
	}
	if !(h.Current().MaxAbs() <= d.threshold) {
		d.first = h.T
	}
}

func (d *Divergence) Value() float64 { return float64(d.first) }
func (d *Divergence) Reset()         { d.first = -1 }
