package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pdesim/internal/config"
	"github.com/san-kum/pdesim/internal/experiment"
	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/sim"
	"github.com/san-kum/pdesim/internal/storage"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the scheme's canonical one) and
// applies Set on top.
type ScenarioStep struct {
	Scheme string             `yaml:"scheme"`
	Preset string             `yaml:"preset"`
	Steps  int                `yaml:"steps"`
	Seed   int64              `yaml:"seed"`
	Set    map[string]float64 `yaml:"set"`
	Save   bool               `yaml:"save"`
}

type StepResult struct {
	RunID  string
	Config *config.Config
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config resolves the step into a full run configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	var cfg *config.Config
	if s.Preset != "" {
		cfg = config.GetPreset(s.Scheme, s.Preset)
	} else {
		cfg = config.ForScheme(s.Scheme)
	}
	if cfg == nil {
		return nil, fmt.Errorf("unknown scheme or preset: %s/%s", s.Scheme, s.Preset)
	}
	if s.Steps > 0 {
		cfg.Steps = s.Steps
	}
	cfg.Seed = s.Seed
	for name, v := range s.Set {
		if err := cfg.Set(name, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario executes the steps in order. Steps marked save are written
// to store when it is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, store *storage.Store, log *slog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "scheme", step.Scheme)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		exp, err := experiment.New(cfg, registry)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		exp.SetLogger(log)

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Config: cfg, Result: result}
		if step.Save && store != nil {
			if sr.RunID, err = store.Save(cfg, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs one scheme across evenly spaced values of a single
// parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Stability  fdm.Stability
	MaxAbs     float64
	// DivergedAt is the first frame past experiment.DivergenceThreshold,
	// or -1.
	DivergedAt int
}

// RunSweep executes the sweep. Comparing DivergedAt against Stability shows
// where the predicted and the observed stability boundaries fall.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		if err := cfg.Set(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		exp, err := experiment.New(cfg, registry)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Stability:  result.Stability,
			MaxAbs:     result.Metrics["max_abs"],
			DivergedAt: int(result.Metrics["divergence_frame"]),
		})
	}

	return results, nil
}
