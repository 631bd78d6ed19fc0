package fdm

import (
	"errors"
	"testing"
)

// testScheme adds one per update (first order) or extrapolates linearly
// (second order), and stamps the inner level index on the left boundary.
type testScheme struct {
	grid  *Grid
	order int
}

func (s *testScheme) Name() string         { return "test" }
func (s *testScheme) Grid() *Grid          { return s.grid }
func (s *testScheme) Order() int           { return s.order }
func (s *testScheme) Components() int      { return 1 }
func (s *testScheme) Stability() Stability { return Stability{Ratio: 0.5, Limit: 1} }

func (s *testScheme) Update(next, cur, prev *Field) {
	for i := 1; i < s.grid.Nx-1; i++ {
		if prev == nil {
			next.Data[i] = cur.Data[i] + 1
		} else {
			next.Data[i] = 2*cur.Data[i] - prev.Data[i] + 1
		}
	}
}

func (s *testScheme) Boundary(next *Field, n int) {
	next.Data[0] = float64(n)
	next.Data[s.grid.Nx-1] = 0
}

func newTestStepper(t *testing.T, order, nt int, opts ...Option) *Stepper {
	t.Helper()
	g, err := NewGrid(1, 1, 1, Extent{0, 4}, Extent{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	st, err := NewStepper(&testScheme{grid: g, order: order}, nt, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestStepperInitialize(t *testing.T) {
	st := newTestStepper(t, 2, 10)
	h := st.Initialize()

	if h.Phase != Initializing {
		t.Errorf("phase = %v, want initializing", h.Phase)
	}
	if h.Current().Nx != 5 || h.Current().Ny != 1 {
		t.Errorf("shape %dx%d", h.Current().Nx, h.Current().Ny)
	}
	if h.Current().MaxAbs() != 0 || h.Previous().MaxAbs() != 0 {
		t.Error("buffers not zero-filled")
	}
}

func TestStepperLifecycleErrors(t *testing.T) {
	st := newTestStepper(t, 1, 3)

	if _, err := st.Step(&History{}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("step on zero history: %v", err)
	}
	if err := st.ApplyInitialCondition(&History{}, ProfileFunc(func(x, y float64) float64 { return 0 })); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ic on zero history: %v", err)
	}

	h := st.Initialize()
	if _, err := st.Step(h); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("step before ic: %v", err)
	}

	zero := ProfileFunc(func(x, y float64) float64 { return 0 })
	if err := st.ApplyInitialCondition(h, zero); err != nil {
		t.Fatal(err)
	}
	if err := st.ApplyInitialCondition(h, zero); !errors.Is(err, ErrStarted) {
		t.Errorf("second ic: %v", err)
	}

	for h.Phase == Stepping {
		if _, err := st.Step(h); err != nil {
			t.Fatal(err)
		}
	}
	if h.T != 2 {
		t.Errorf("terminal T = %d, want 2", h.T)
	}
	if _, err := st.Step(h); !errors.Is(err, ErrTerminal) {
		t.Errorf("step after terminal: %v", err)
	}
}

func TestStepperFirstOrder(t *testing.T) {
	st := newTestStepper(t, 1, 5)
	h := st.Initialize()
	if err := st.ApplyInitialCondition(h, ProfileFunc(func(x, y float64) float64 { return x })); err != nil {
		t.Fatal(err)
	}
	if h.T != 0 || h.Previous() != nil {
		t.Fatalf("after ic: T=%d previous=%v", h.T, h.Previous())
	}

	for i := 0; i < 3; i++ {
		if _, err := st.Step(h); err != nil {
			t.Fatal(err)
		}
	}
	cur := h.Current()
	if h.T != 3 {
		t.Errorf("T = %d, want 3", h.T)
	}
	if cur.Data[2] != 2+3 {
		t.Errorf("interior = %v, want 5", cur.Data[2])
	}
	if cur.Data[0] != 3 || cur.Data[4] != 0 {
		t.Errorf("boundary = [%v %v], want [3 0]", cur.Data[0], cur.Data[4])
	}
}

func TestStepperSecondOrderBootstrap(t *testing.T) {
	st := newTestStepper(t, 2, 10)
	h := st.Initialize()
	if err := st.ApplyInitialCondition(h, ProfileFunc(func(x, y float64) float64 { return 1 })); err != nil {
		t.Fatal(err)
	}

	if h.T != 1 || h.Iter != 1 {
		t.Errorf("after ic: T=%d Iter=%d, want 1 1", h.T, h.Iter)
	}
	if !h.Current().Equal(h.Previous()) {
		t.Error("level 1 should copy level 0")
	}

	if _, err := st.Step(h); err != nil {
		t.Fatal(err)
	}
	// 2*1 - 1 + 1
	if got := h.Current().Data[2]; got != 2 {
		t.Errorf("t=2 interior = %v, want 2", got)
	}
	if got := h.Previous().Data[2]; got != 1 {
		t.Errorf("t=1 interior = %v, want 1", got)
	}
	if got := h.Current().Data[0]; got != 2 {
		t.Errorf("boundary stamp = %v, want 2", got)
	}
}

func TestStepperSubSteps(t *testing.T) {
	st := newTestStepper(t, 1, 4, WithSubSteps(10))
	if st.NT() != 4 || st.SubSteps() != 10 {
		t.Fatalf("NT=%d SubSteps=%d, want 4 10", st.NT(), st.SubSteps())
	}
	h := st.Initialize()
	if err := st.ApplyInitialCondition(h, ProfileFunc(func(x, y float64) float64 { return 0 })); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Step(h); err != nil {
		t.Fatal(err)
	}
	if h.T != 1 || h.Iter != 10 {
		t.Errorf("T=%d Iter=%d, want 1 10", h.T, h.Iter)
	}
	if got := h.Current().Data[1]; got != 10 {
		t.Errorf("interior = %v, want 10", got)
	}
}

func TestStepperSnapshotIsStable(t *testing.T) {
	st := newTestStepper(t, 1, 5)
	h := st.Initialize()
	_ = st.ApplyInitialCondition(h, ProfileFunc(func(x, y float64) float64 { return 0 }))

	snap := h.Snapshot()
	if _, err := st.Step(h); err != nil {
		t.Fatal(err)
	}
	if snap.Data[2] != 0 {
		t.Error("snapshot changed after step")
	}
}

func TestNewStepperInvalid(t *testing.T) {
	g, _ := NewGrid(1, 1, 1, Extent{0, 4}, Extent{}, 1)
	if _, err := NewStepper(&testScheme{grid: g, order: 2}, 1); !errors.Is(err, ErrInvalidSteps) {
		t.Errorf("nt below order: %v", err)
	}
	if _, err := NewStepper(&testScheme{grid: g, order: 1}, 5, WithSubSteps(0)); !errors.Is(err, ErrInvalidSteps) {
		t.Errorf("zero sub-steps: %v", err)
	}
}

func TestStepperShapeMismatch(t *testing.T) {
	a := newTestStepper(t, 1, 5)
	g, _ := NewGrid(1, 0.5, 1, Extent{0, 4}, Extent{}, 1)
	b, _ := NewStepper(&testScheme{grid: g, order: 1}, 5)

	h := b.Initialize()
	if err := a.ApplyInitialCondition(h, ProfileFunc(func(x, y float64) float64 { return 0 })); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("err = %v, want shape mismatch", err)
	}
}
