package config

import (
	"fmt"
	"sort"
)

var setters = map[string]func(*Config, float64){
	"dx":        func(c *Config, v float64) { c.Dx = v },
	"dt":        func(c *Config, v float64) { c.Dt = v },
	"amplitude": func(c *Config, v float64) { c.Profile.Amplitude = v },
	"width":     func(c *Config, v float64) { c.Profile.Width = v },
	"speed":     func(c *Config, v float64) { c.Wave.Speed = v },
	"drive":     func(c *Config, v float64) { c.Wave.DriveAmplitude = v },
	"k":         func(c *Config, v float64) { c.Heat.Diffusivity = v },
	"du":        func(c *Config, v float64) { c.GrayScott.Du = v },
	"dv":        func(c *Config, v float64) { c.GrayScott.Dv = v },
	"feed":      func(c *Config, v float64) { c.GrayScott.F = v },
	"kill":      func(c *Config, v float64) { c.GrayScott.K = v },
	"noise":     func(c *Config, v float64) { c.GrayScott.Noise = v },
}

// Set assigns a numeric parameter by its flag name.
func (c *Config) Set(name string, v float64) error {
	fn, ok := setters[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s (available: %v)", name, Params())
	}
	fn(c, v)
	return nil
}

// Params lists the names accepted by Set.
func Params() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
