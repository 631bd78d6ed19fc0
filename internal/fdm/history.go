package fdm

// Phase is the lifecycle position of a History.
type Phase int

const (
	Uninitialized Phase = iota
	Initializing
	Stepping
	Terminal
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Stepping:
		return "stepping"
	case Terminal:
		return "terminal"
	}
	return "unknown"
}

// History is the explicit state of one run: the time levels a scheme reads
// plus one scratch buffer, newest first.
type History struct {
	// T is the time index of Current.
	T int
	// NT is the number of time levels in the run; T never exceeds NT-1.
	NT int
	// Iter counts inner updates, including the levels set by the initial
	// condition. It equals T unless sub-stepping is enabled.
	Iter  int
	Phase Phase

	order  int
	levels []*Field
}

// Current is the newest completed time level.
func (h *History) Current() *Field {
	if len(h.levels) == 0 {
		return nil
	}
	return h.levels[0]
}

// Previous is the level before Current for second-order schemes, nil
// otherwise.
func (h *History) Previous() *Field {
	if h.order < 2 || len(h.levels) < 2 {
		return nil
	}
	return h.levels[1]
}

// Snapshot returns an owned copy of Current that later steps do not touch.
func (h *History) Snapshot() *Field {
	if cur := h.Current(); cur != nil {
		return cur.Clone()
	}
	return nil
}

// Order is the number of past levels the update reads.
func (h *History) Order() int { return h.order }

// rotate moves the scratch buffer (just written) to the front.
func (h *History) rotate() {
	last := len(h.levels) - 1
	next := h.levels[last]
	copy(h.levels[1:], h.levels[:last])
	h.levels[0] = next
}

func (h *History) scratch() *Field { return h.levels[len(h.levels)-1] }
