package metrics

import (
	"math"

	"github.com/san-kum/pdesim/internal/fdm"
)

// MaxAbs is the peak magnitude seen over all frames and components.
type MaxAbs struct {
	peak float64
}

func NewMaxAbs() *MaxAbs { return &MaxAbs{} }

func (m *MaxAbs) Name() string { return "max_abs" }

func (m *MaxAbs) Observe(h *fdm.History) {
	v := h.Current().MaxAbs()
	if math.IsNaN(v) {
		m.peak = math.Inf(1)
		return
	}
	m.peak = math.Max(m.peak, v)
}

func (m *MaxAbs) Value() float64 { return m.peak }
func (m *MaxAbs) Reset()         { m.peak = 0 }

// Mean is the spatial mean of one component at the latest frame.
type Mean struct {
	component int
	value     float64
}

func NewMean(component int) *Mean { return &Mean{component: component} }

func (m *Mean) Name() string {
	if m.component == 0 {
		return "mean"
	}
	return "mean_v"
}

func (m *Mean) Observe(h *fdm.History) {
	cur := h.Current()
	if m.component < cur.Components {
		m.value = cur.Mean(m.component)
	}
}

func (m *Mean) Value() float64 { return m.value }
func (m *Mean) Reset()         { m.value = 0 }

// Energy tracks the relative drift of a scheme's discrete energy from the
// first frame that has two time levels.
type Energy struct {
	energy   func(cur, prev *fdm.Field) float64
	initial  float64
	maxDrift float64
	started  bool
}

// EnergyFunc is implemented by schemes with a conserved discrete energy.
type EnergyFunc interface {
	Energy(cur, prev *fdm.Field) float64
}

func NewEnergy(e EnergyFunc) *Energy { return &Energy{energy: e.Energy} }

func (e *Energy) Name() string { return "energy_drift" }

func (e *Energy) Observe(h *fdm.History) {
	prev := h.Previous()
	if prev == nil {
		return
	}
	val := e.energy(h.Current(), prev)
	if !e.started {
		e.initial, e.started = val, true
		return
	}
	if e.initial != 0 {
		e.maxDrift = math.Max(e.maxDrift, math.Abs(val-e.initial)/math.Abs(e.initial))
	}
}

func (e *Energy) Value() float64 { return e.maxDrift }

func (e *Energy) Reset() {
	e.initial, e.maxDrift, e.started = 0, 0, false
}
