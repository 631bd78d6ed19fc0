package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pdesim/internal/config"
	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/initcond"
	"github.com/san-kum/pdesim/internal/schemes"
)

func TestRegistryBuildsEveryPreset(t *testing.T) {
	r := NewRegistry()
	for _, scheme := range config.ListSchemes() {
		for _, name := range config.ListPresets(scheme) {
			cfg := config.GetPreset(scheme, name)
			s, err := r.GetScheme(cfg)
			require.NoError(t, err, "%s/%s", scheme, name)
			assert.Equal(t, scheme, s.Name())
		}
	}
}

func TestRegistryGridShapes(t *testing.T) {
	r := NewRegistry()

	g, err := r.Grid(config.GetPreset("wave1d", "default"))
	require.NoError(t, err)
	assert.Equal(t, 61, g.Nx)
	assert.Equal(t, 1, g.Ny)

	g, err = r.Grid(config.GetPreset("heat2d", "heater"))
	require.NoError(t, err)
	assert.Equal(t, []int{100, 100}, g.Shape())

	g, err = r.Grid(config.GetPreset("grayscott", "coral"))
	require.NoError(t, err)
	assert.Equal(t, 256, g.Nx)
}

func TestRegistryStabilityOfPresets(t *testing.T) {
	r := NewRegistry()

	stable, err := r.GetScheme(config.GetPreset("wave1d", "default"))
	require.NoError(t, err)
	assert.True(t, stable.Stability().Stable())
	assert.InDelta(t, 0.01, stable.Stability().Ratio, 1e-12)

	unstable, err := r.GetScheme(config.GetPreset("wave1d", "unstable"))
	require.NoError(t, err)
	assert.False(t, unstable.Stability().Stable())

	heat, err := r.GetScheme(config.GetPreset("heat2d", "heater"))
	require.NoError(t, err)
	assert.InDelta(t, 0.2, heat.Stability().Ratio, 1e-9)
	require.Len(t, heat.(*schemes.Heat2D).Heaters, 1)
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()

	cfg := config.DefaultConfig()
	cfg.Scheme = "burgers"
	_, err := r.GetScheme(cfg)
	assert.ErrorContains(t, err, "unknown scheme")

	cfg = config.DefaultConfig()
	cfg.Dx = 0
	_, err = r.GetScheme(cfg)
	assert.True(t, errors.Is(err, fdm.ErrInvalidSpacing))
}

func TestDefaultMetrics(t *testing.T) {
	r := NewRegistry()

	wave, _ := r.GetScheme(config.GetPreset("wave1d", "default"))
	names := metricNames(r, wave)
	assert.Contains(t, names, "energy_drift")
	assert.NotContains(t, names, "mean_v")

	gs, _ := r.GetScheme(config.GetPreset("grayscott", "coral"))
	names = metricNames(r, gs)
	assert.Contains(t, names, "mean_v")
	assert.NotContains(t, names, "energy_drift")
}

func metricNames(r *Registry, s fdm.Scheme) []string {
	var names []string
	for _, m := range r.DefaultMetrics(s) {
		names = append(names, m.Name())
	}
	return names
}

func TestInitialCondition(t *testing.T) {
	cfg := config.GetPreset("grayscott", "coral")
	cfg.GrayScott.Radius = 5
	ic, err := InitialCondition(cfg, 1)
	require.NoError(t, err)
	seed, ok := ic.(initcond.GrayScottSeed)
	require.True(t, ok)
	assert.Equal(t, 5, seed.Radius)

	ic, err = InitialCondition(config.GetPreset("heat2d", "heater"), 1)
	require.NoError(t, err)
	assert.IsType(t, initcond.Zero{}, ic)

	cfg = config.DefaultConfig()
	cfg.InitialCondition = "sawtooth"
	_, err = InitialCondition(cfg, 1)
	assert.Error(t, err)
}

func TestExperimentRun(t *testing.T) {
	cfg := config.GetPreset("wave1d", "default")
	cfg.Steps = 50
	cfg.Every = 10

	exp, err := New(cfg, NewRegistry())
	require.NoError(t, err)
	result, err := exp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "wave1d", result.Scheme)
	assert.Len(t, result.Frames, 5)
	assert.Equal(t, -1.0, result.Metrics["divergence_frame"])
}

func TestExperimentEnsembleUniform(t *testing.T) {
	cfg := config.GetPreset("heat1d", "random")
	cfg.Steps = 20
	cfg.Seed = 7

	exp, err := New(cfg, NewRegistry())
	require.NoError(t, err)
	results, err := exp.Ensemble(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.False(t, results[0].Final.Equal(results[1].Final))

	// The first member replays the single run with the same seed.
	single, err := exp.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, single.Final.Equal(results[0].Final))
}
