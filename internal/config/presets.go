package config

import (
	"sort"

	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/initcond"
)

func wave1d(dt float64, steps int) *Config {
	cfg := DefaultConfig()
	cfg.Scheme = "wave1d"
	cfg.Dt = dt
	cfg.Steps = steps
	cfg.Y = fdm.Extent{}
	return cfg
}

func heat1d() *Config {
	cfg := wave1d(0.01, 10002)
	cfg.Scheme = "heat1d"
	cfg.InitialCondition = initcond.NameUniform
	return cfg
}

func plane(scheme string, dt float64) *Config {
	cfg := DefaultConfig()
	cfg.Scheme = scheme
	cfg.X = fdm.Extent{Min: -5, Max: 5}
	cfg.Y = fdm.Extent{Min: -5, Max: 5}
	cfg.Dt = dt
	cfg.Steps = 500
	return cfg
}

func wave2d() *Config {
	cfg := plane("wave2d", 0.1/1.415)
	cfg.InitialCondition = initcond.NameExponential
	cfg.Profile = initcond.Options{Amplitude: 1, X0: 0.25, Y0: -0.7, Width: 0.25}
	cfg.Wave.DriveAmplitude = 0
	return cfg
}

func heat2d() *Config {
	cfg := plane("heat2d", 0.002)
	cfg.SubSteps = 10
	cfg.Heat.Diffusivity = 1
	cfg.InitialCondition = ""
	cfg.Heat.Heaters = []Region{{X0: 50, X1: 80, Y0: 40, Y1: 60, Value: 1}}
	return cfg
}

func grayScott(du, dv, f, k float64) *Config {
	cfg := DefaultConfig()
	cfg.Scheme = "grayscott"
	cfg.Dx, cfg.Dt = 1, 1
	cfg.X = fdm.Extent{Min: 0, Max: 256}
	cfg.Y = fdm.Extent{Min: 0, Max: 256}
	cfg.Steps = DefaultGSSteps
	cfg.SubSteps = DefaultSubSteps
	cfg.Every = 20
	cfg.InitialCondition = ""
	cfg.GrayScott.Du, cfg.GrayScott.Dv = du, dv
	cfg.GrayScott.F, cfg.GrayScott.K = f, k
	return cfg
}

// Presets holds the named parameter sets per scheme. Gray-Scott values are
// the classic (Du, Dv, F, k) pattern table.
var Presets = map[string]map[string]*Config{
	"wave1d": {
		"default":  wave1d(0.01, 10002),
		"square":   withIC(wave1d(0.01, 2000), initcond.NameSquare, 0.5),
		"unstable": wave1d(0.15, 200),
	},
	"heat1d": {
		"random":   heat1d(),
		"unstable": withDt(heat1d(), 0.02),
	},
	"wave2d": {
		"pulse": wave2d(),
	},
	"heat2d": {
		"heater": heat2d(),
	},
	"grayscott": {
		"bacteria1":     grayScott(0.16, 0.08, 0.035, 0.065),
		"bacteria2":     grayScott(0.14, 0.06, 0.035, 0.065),
		"coral":         grayScott(0.16, 0.08, 0.060, 0.062),
		"fingerprint":   grayScott(0.19, 0.05, 0.060, 0.062),
		"spirals":       grayScott(0.10, 0.10, 0.018, 0.050),
		"spirals-dense": grayScott(0.12, 0.08, 0.020, 0.050),
		"spirals-fast":  grayScott(0.10, 0.16, 0.020, 0.050),
		"unstable":      grayScott(0.16, 0.08, 0.020, 0.055),
		"worms1":        grayScott(0.16, 0.08, 0.050, 0.065),
		"worms2":        grayScott(0.16, 0.08, 0.054, 0.063),
		"zebrafish":     grayScott(0.16, 0.08, 0.035, 0.060),
	},
}

func withIC(cfg *Config, name string, width float64) *Config {
	cfg.InitialCondition = name
	cfg.Profile.Width = width
	return cfg
}

func withDt(cfg *Config, dt float64) *Config {
	cfg.Dt = dt
	return cfg
}

var canonical = map[string]string{
	"wave1d":    "default",
	"heat1d":    "random",
	"wave2d":    "pulse",
	"heat2d":    "heater",
	"grayscott": "bacteria1",
}

// ForScheme returns a copy of the preset a bare "run <scheme>" starts from,
// or nil for an unknown scheme.
func ForScheme(scheme string) *Config {
	return GetPreset(scheme, canonical[scheme])
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scheme, preset string) *Config {
	schemePresets, ok := Presets[scheme]
	if !ok {
		return nil
	}
	cfg, ok := schemePresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(scheme string) []string {
	schemePresets, ok := Presets[scheme]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(schemePresets))
	for name := range schemePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListSchemes() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
