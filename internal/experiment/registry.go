package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/pdesim/internal/config"
	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/metrics"
	"github.com/san-kum/pdesim/internal/schemes"
	"github.com/san-kum/pdesim/internal/sim"
)

// DivergenceThreshold is the magnitude past which a run counts as diverged.
const DivergenceThreshold = 100.0

// Builder constructs a scheme on the grid described by cfg.
type Builder func(g *fdm.Grid, cfg *config.Config) (fdm.Scheme, error)

type entry struct {
	rank   int
	offset int
	build  Builder
}

type Registry struct {
	schemes map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{schemes: make(map[string]entry)}

	r.Register("wave1d", 1, 1, func(g *fdm.Grid, cfg *config.Config) (fdm.Scheme, error) {
		w, err := schemes.NewWave1D(g, cfg.Wave.Speed)
		if err != nil {
			return nil, err
		}
		w.DriveAmplitude = cfg.Wave.DriveAmplitude
		return w, nil
	})
	r.Register("wave2d", 2, 0, func(g *fdm.Grid, cfg *config.Config) (fdm.Scheme, error) {
		w, err := schemes.NewWave2D(g, cfg.Wave.Speed)
		if err != nil {
			return nil, err
		}
		w.Edge = cfg.Wave.Edge
		w.Obstacles = regions(cfg.Wave.Obstacles)
		return w, nil
	})
	r.Register("heat1d", 1, 1, func(g *fdm.Grid, cfg *config.Config) (fdm.Scheme, error) {
		h, err := schemes.NewHeat1D(g, cfg.Heat.Diffusivity)
		if err != nil {
			return nil, err
		}
		h.Left, h.Right = cfg.Heat.Left, cfg.Heat.Right
		return h, nil
	})
	r.Register("heat2d", 2, 0, func(g *fdm.Grid, cfg *config.Config) (fdm.Scheme, error) {
		h, err := schemes.NewHeat2D(g, cfg.Heat.Diffusivity)
		if err != nil {
			return nil, err
		}
		h.Edge = cfg.Heat.Edge
		h.Heaters = regions(cfg.Heat.Heaters)
		return h, nil
	})
	r.Register("grayscott", 2, 0, func(g *fdm.Grid, cfg *config.Config) (fdm.Scheme, error) {
		gs := cfg.GrayScott
		return schemes.NewGrayScott(g, gs.Du, gs.Dv, gs.F, gs.K)
	})

	return r
}

// Register adds a scheme built on a grid of the given rank and point offset.
func (r *Registry) Register(name string, rank, offset int, b Builder) {
	r.schemes[name] = entry{rank: rank, offset: offset, build: b}
}

// Grid builds the grid cfg describes for its scheme.
func (r *Registry) Grid(cfg *config.Config) (*fdm.Grid, error) {
	e, ok := r.schemes[cfg.Scheme]
	if !ok {
		return nil, fmt.Errorf("unknown scheme: %s", cfg.Scheme)
	}
	return fdm.NewGrid(e.rank, cfg.Dx, cfg.Dt, cfg.X, cfg.Y, e.offset)
}

func (r *Registry) GetScheme(cfg *config.Config) (fdm.Scheme, error) {
	g, err := r.Grid(cfg)
	if err != nil {
		return nil, err
	}
	return r.schemes[cfg.Scheme].build(g, cfg)
}

func (r *Registry) ListSchemes() []string {
	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh metrics suited to s.
func (r *Registry) DefaultMetrics(s fdm.Scheme) []sim.Metric {
	ms := []sim.Metric{
		metrics.NewMaxAbs(),
		metrics.NewStability(DivergenceThreshold),
		metrics.NewDivergence(DivergenceThreshold),
		metrics.NewMean(0),
	}
	if e, ok := s.(metrics.EnergyFunc); ok {
		ms = append(ms, metrics.NewEnergy(e))
	}
	if s.Components() > 1 {
		ms = append(ms, metrics.NewMean(schemes.V))
	}
	return ms
}

func regions(rs []config.Region) []schemes.Region {
	if len(rs) == 0 {
		return nil
	}
	out := make([]schemes.Region, len(rs))
	for i, r := range rs {
		out[i] = schemes.Region{X0: r.X0, X1: r.X1, Y0: r.Y0, Y1: r.Y1, Value: r.Value}
	}
	return out
}
