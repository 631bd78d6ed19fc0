package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/initcond"
)

const (
	DefaultScheme   = "wave1d"
	DefaultDx       = 0.1
	DefaultDt       = 0.01
	DefaultSteps    = 1000
	DefaultEvery    = 10
	DefaultSpeed    = 1.0
	DefaultHeatK    = 0.4
	DefaultGSSteps  = 200
	DefaultSubSteps = 30
)

type Config struct {
	Scheme           string           `yaml:"scheme"`
	Dx               float64          `yaml:"dx"`
	Dt               float64          `yaml:"dt"`
	X                fdm.Extent       `yaml:"x"`
	Y                fdm.Extent       `yaml:"y"`
	Steps            int              `yaml:"steps"`
	SubSteps         int              `yaml:"sub_steps"`
	Every            int              `yaml:"every"`
	Seed             int64            `yaml:"seed"`
	InitialCondition string           `yaml:"initial_condition"`
	Profile          initcond.Options `yaml:"profile"`
	Wave             WaveConfig       `yaml:"wave"`
	Heat             HeatConfig       `yaml:"heat"`
	GrayScott        GrayScottConfig  `yaml:"grayscott"`
}

type WaveConfig struct {
	Speed          float64  `yaml:"speed"`
	DriveAmplitude float64  `yaml:"drive_amplitude"`
	Edge           float64  `yaml:"edge"`
	Obstacles      []Region `yaml:"obstacles,omitempty"`
}

type HeatConfig struct {
	Diffusivity float64  `yaml:"diffusivity"`
	Left        float64  `yaml:"left"`
	Right       float64  `yaml:"right"`
	Edge        float64  `yaml:"edge"`
	Heaters     []Region `yaml:"heaters,omitempty"`
}

type GrayScottConfig struct {
	Du     float64 `yaml:"du"`
	Dv     float64 `yaml:"dv"`
	F      float64 `yaml:"f"`
	K      float64 `yaml:"k"`
	Radius int     `yaml:"radius"`
	Noise  float64 `yaml:"noise"`
}

// Region is a half-open index rectangle, columns [x0, x1) and rows [y0, y1).
type Region struct {
	X0    int     `yaml:"x0"`
	X1    int     `yaml:"x1"`
	Y0    int     `yaml:"y0"`
	Y1    int     `yaml:"y1"`
	Value float64 `yaml:"value"`
}

func DefaultConfig() *Config {
	return &Config{
		Scheme:           DefaultScheme,
		Dx:               DefaultDx,
		Dt:               DefaultDt,
		X:                fdm.Extent{Min: -3, Max: 3},
		Y:                fdm.Extent{Min: -3, Max: 3},
		Steps:            DefaultSteps,
		SubSteps:         1,
		Every:            DefaultEvery,
		InitialCondition: initcond.NameGaussian,
		Profile:          initcond.DefaultOptions(),
		Wave: WaveConfig{
			Speed:          DefaultSpeed,
			DriveAmplitude: 3,
		},
		Heat: HeatConfig{
			Diffusivity: DefaultHeatK,
		},
		GrayScott: GrayScottConfig{
			Du: 0.16, Dv: 0.08, F: 0.035, K: 0.065,
			Radius: 20, Noise: 0.15,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets can be tweaked without aliasing.
func (c *Config) Clone() *Config {
	out := *c
	out.Wave.Obstacles = append([]Region(nil), c.Wave.Obstacles...)
	out.Heat.Heaters = append([]Region(nil), c.Heat.Heaters...)
	return &out
}
