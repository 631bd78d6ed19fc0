package fdm

import "fmt"

// Scheme is an explicit finite-difference update rule.
type Scheme interface {
	Name() string
	Grid() *Grid
	// Order is the number of past time levels Update reads: 1 for
	// first-order-in-time equations, 2 for the wave recurrence.
	Order() int
	// Components is the number of coupled scalar fields.
	Components() int
	Stability() Stability
	// Update writes the interior points of next from cur (level n-1) and,
	// for second-order schemes, prev (level n-2). It must not read next.
	Update(next, cur, prev *Field)
	// Boundary overwrites every non-interior point of next (and any pinned
	// region) for inner level n, taking precedence over Update.
	Boundary(next *Field, n int)
}

// InitialCondition populates time level 0.
type InitialCondition interface {
	Apply(dst *Field, g *Grid)
}

// ProfileFunc is a pointwise initial profile of position applied to
// component 0.
type ProfileFunc func(x, y float64) float64

func (p ProfileFunc) Apply(dst *Field, g *Grid) {
	plane := dst.Component(0)
	g.Each(func(i, j int, x, y float64) {
		plane[j*g.Nx+i] = p(x, y)
	})
}

// Stepper advances a History with a Scheme. It holds no per-run state, so
// one Stepper may drive many histories.
type Stepper struct {
	scheme   Scheme
	nt       int
	subSteps int
}

type Option func(*Stepper)

// WithSubSteps applies the update n times per observed frame. The exposed
// time index still advances by one per Step.
func WithSubSteps(n int) Option {
	return func(s *Stepper) { s.subSteps = n }
}

// NewStepper builds a stepper for nt time levels (indices 0..nt-1).
func NewStepper(scheme Scheme, nt int, opts ...Option) (*Stepper, error) {
	s := &Stepper{scheme: scheme, nt: nt, subSteps: 1}
	for _, opt := range opts {
		opt(s)
	}
	if nt < scheme.Order() {
		return nil, fmt.Errorf("%w: %d levels for an order-%d scheme", ErrInvalidSteps, nt, scheme.Order())
	}
	if s.subSteps < 1 {
		return nil, fmt.Errorf("%w: sub-steps %d", ErrInvalidSteps, s.subSteps)
	}
	return s, nil
}

func (s *Stepper) Scheme() Scheme { return s.scheme }
func (s *Stepper) Grid() *Grid    { return s.scheme.Grid() }
func (s *Stepper) NT() int        { return s.nt }
func (s *Stepper) SubSteps() int  { return s.subSteps }

// Initialize allocates a zero-filled history sized to the scheme's grid.
func (s *Stepper) Initialize() *History {
	order := s.scheme.Order()
	h := &History{
		NT:     s.nt,
		Phase:  Initializing,
		order:  order,
		levels: make([]*Field, order+1),
	}
	for i := range h.levels {
		h.levels[i] = NewField(s.scheme.Grid(), s.scheme.Components())
	}
	return h
}

// ApplyInitialCondition writes time level 0 with ic. Second-order schemes
// also get level 1 as a copy of level 0, a zero-velocity start.
func (s *Stepper) ApplyInitialCondition(h *History, ic InitialCondition) error {
	switch h.Phase {
	case Uninitialized:
		return ErrNotInitialized
	case Stepping, Terminal:
		return ErrStarted
	}
	if !s.fits(h) {
		return ErrShapeMismatch
	}

	cur := h.levels[0]
	for i := range cur.Data {
		cur.Data[i] = 0
	}
	ic.Apply(cur, s.scheme.Grid())
	for _, lvl := range h.levels[1:] {
		lvl.CopyFrom(cur)
	}

	h.T = h.order - 1
	h.Iter = h.T
	h.Phase = Stepping
	if h.T >= h.NT-1 {
		h.Phase = Terminal
	}
	return nil
}

// Step computes the next time level in place and returns h. Boundary values
// are written after the stencil and win over it.
func (s *Stepper) Step(h *History) (*History, error) {
	switch h.Phase {
	case Uninitialized, Initializing:
		return h, ErrNotInitialized
	case Terminal:
		return h, ErrTerminal
	}
	if !s.fits(h) {
		return h, ErrShapeMismatch
	}

	for k := 0; k < s.subSteps; k++ {
		next := h.scratch()
		var prev *Field
		if h.order == 2 {
			prev = h.levels[1]
		}
		s.scheme.Update(next, h.levels[0], prev)
		h.Iter++
		s.scheme.Boundary(next, h.Iter)
		h.rotate()
	}

	h.T++
	if h.T >= h.NT-1 {
		h.Phase = Terminal
	}
	return h, nil
}

func (s *Stepper) fits(h *History) bool {
	if h.order != s.scheme.Order() || len(h.levels) != h.order+1 {
		return false
	}
	g := s.scheme.Grid()
	f := h.levels[0]
	return f.Nx == g.Nx && f.Ny == g.Ny && f.Components == s.scheme.Components()
}
