package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/pdesim/internal/config"
	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID               string           `json:"id"`
	Scheme           string           `json:"scheme"`
	Timestamp        time.Time        `json:"timestamp"`
	Seed             int64            `json:"seed"`
	Dx               float64          `json:"dx"`
	Dt               float64          `json:"dt"`
	X                fdm.Extent       `json:"x"`
	Y                fdm.Extent       `json:"y"`
	Nx               int              `json:"nx"`
	Ny               int              `json:"ny"`
	Components       int              `json:"components"`
	Steps            int              `json:"steps"`
	SubSteps         int              `json:"sub_steps"`
	Every            int              `json:"every"`
	StepsTaken       int              `json:"steps_taken"`
	InitialCondition string           `json:"initial_condition,omitempty"`
	Stability        fdm.Stability    `json:"stability"`
	Metrics          map[string]Float `json:"metrics"`
}

// Grid rebuilds the field shape the run was stored with.
func (m *RunMetadata) Grid() *fdm.Grid {
	rank := 2
	if m.Ny == 1 {
		rank = 1
	}
	return &fdm.Grid{Rank: rank, Dx: m.Dx, Dt: m.Dt, X: m.X, Y: m.Y, Nx: m.Nx, Ny: m.Ny}
}

func newMetadata(cfg *config.Config, result *sim.Result) RunMetadata {
	now := time.Now()
	meta := RunMetadata{
		ID:               fmt.Sprintf("%s_%d", result.Scheme, now.UnixNano()),
		Scheme:           result.Scheme,
		Timestamp:        now,
		Seed:             cfg.Seed,
		Dx:               result.Grid.Dx,
		Dt:               result.Grid.Dt,
		X:                result.Grid.X,
		Y:                result.Grid.Y,
		Nx:               result.Grid.Nx,
		Ny:               result.Grid.Ny,
		Components:       result.Final.Components,
		Steps:            cfg.Steps,
		SubSteps:         cfg.SubSteps,
		Every:            cfg.Every,
		StepsTaken:       result.StepsTaken,
		InitialCondition: cfg.InitialCondition,
		Stability:        result.Stability,
		Metrics:          make(map[string]Float, len(result.Metrics)),
	}
	for k, v := range result.Metrics {
		meta.Metrics[k] = Float(v)
	}
	return meta
}

// Save writes <base>/<run-id>/{metadata.json,frames.csv} and returns the
// run id.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	meta := newMetadata(cfg, result)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteFramesCSV(csvFile, result.Frames); err != nil {
		return "", err
	}
	return meta.ID, csvFile.Sync()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads the recorded frames of a run back into fields.
func (s *Store) LoadFrames(runID string) (*RunMetadata, []sim.Frame, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	frames, err := ReadFramesCSV(file, meta.Grid(), meta.Components)
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return meta, frames, nil
}

// FramesPath is the location of a run's frame table.
func (s *Store) FramesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, framesFile)
}
