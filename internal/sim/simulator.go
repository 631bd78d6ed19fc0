package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/pdesim/internal/fdm"
)

// Simulator is the driving loop around an fdm.Stepper: it applies the
// initial condition, steps until the last time level and reports every
// frame to its metrics and observers.
type Simulator struct {
	scheme    fdm.Scheme
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

func New(scheme fdm.Scheme) *Simulator {
	return &Simulator{
		scheme:    scheme,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    slog.New(slog.DiscardHandler),
	}
}

func (s *Simulator) AddMetric(m Metric)       { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)   { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *slog.Logger) { s.logger = l }
func (s *Simulator) Scheme() fdm.Scheme       { return s.scheme }

func (s *Simulator) Run(ctx context.Context, ic fdm.InitialCondition, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	subSteps := cfg.SubSteps
	if subSteps == 0 {
		subSteps = 1
	}

	st, err := fdm.NewStepper(s.scheme, cfg.Steps, fdm.WithSubSteps(subSteps))
	if err != nil {
		return nil, err
	}

	stab := s.scheme.Stability()
	log := s.logger.With("scheme", s.scheme.Name(), "seed", cfg.Seed)
	log.Info("run starting", "grid", s.scheme.Grid().String(), "levels", st.NT(),
		"substeps", st.SubSteps(), "stability", stab.Ratio, "limit", stab.Limit)
	if !stab.Stable() {
		log.Warn("stability ratio exceeds the scheme bound; the field will diverge",
			"ratio", stab.Ratio, "limit", stab.Limit)
	}

	result := &Result{
		Scheme:    s.scheme.Name(),
		Grid:      s.scheme.Grid(),
		Stability: stab,
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}
	if cfg.Every > 0 {
		result.Frames = make([]Frame, 0, cfg.Steps/cfg.Every+2)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	h := st.Initialize()
	if err := st.ApplyInitialCondition(h, ic); err != nil {
		return nil, err
	}
	s.observe(h, result, cfg)

	for h.Phase == fdm.Stepping {
		select {
		case <-ctx.Done():
			result.Final = h.Snapshot()
			return result, ctx.Err()
		default:
		}

		if _, err := st.Step(h); err != nil {
			return result, err
		}
		result.StepsTaken++
		s.observe(h, result, cfg)

		if cfg.StopOnNonFinite && !h.Current().IsFinite() {
			result.Errors = append(result.Errors, SimError{T: h.T, Message: "non-finite field (NaN/Inf)"})
			log.Warn("stopping on non-finite field", "t", h.T)
			break
		}
	}

	result.Final = h.Snapshot()
	if n := len(result.Frames); cfg.Every > 0 && (n == 0 || result.Frames[n-1].T != h.T) {
		result.Frames = append(result.Frames, Frame{T: h.T, Field: result.Final})
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	log.Info("run complete", "steps", result.StepsTaken, "max_abs", result.Final.MaxAbs())
	return result, nil
}

func (s *Simulator) observe(h *fdm.History, result *Result, cfg Config) {
	for _, m := range s.metrics {
		m.Observe(h)
	}
	for _, obs := range s.observers {
		obs.OnFrame(h)
	}
	if cfg.Every > 0 && h.T%cfg.Every == 0 {
		result.Frames = append(result.Frames, Frame{T: h.T, Field: h.Snapshot()})
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if cfg.SubSteps < 0 {
		return fmt.Errorf("sub-steps must not be negative, got %d", cfg.SubSteps)
	}
	if cfg.Every < 0 {
		return fmt.Errorf("sample interval must not be negative, got %d", cfg.Every)
	}
	return nil
}
