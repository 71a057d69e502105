package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/logging"
	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep names a preset or a config file and optional overrides.
// Zero overrides keep the base value.
type ScenarioStep struct {
	Preset    string   `yaml:"preset"`
	Config    string   `yaml:"config"`
	Frames    int      `yaml:"frames"`
	Seed      int64    `yaml:"seed"`
	Gravity   *float64 `yaml:"gravity"`
	MaxBodies int      `yaml:"max_bodies"`
	SaveAs    string   `yaml:"save_as"`
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

// Resolve builds the config for one step.
func (st ScenarioStep) Resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case st.Config != "":
		loaded, err := config.Load(st.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case st.Preset != "":
		cfg = config.GetPreset(st.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", st.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if st.Frames != 0 {
		cfg.Frames = st.Frames
	}
	if st.Seed != 0 {
		cfg.Seed = st.Seed
	}
	if st.Gravity != nil {
		cfg.Solver.Gravity = dynamo.Vec(0, *st.Gravity)
	}
	if st.MaxBodies != 0 {
		cfg.MaxBodies = st.MaxBodies
	}
	if st.SaveAs != "" {
		cfg.Name = st.SaveAs
	}
	return cfg, cfg.Validate()
}

// StepResult pairs a step's resolved config with its run result.
type StepResult struct {
	Config *config.Config
	Result *sim.Result
}

// RunScenario executes every step in order on a fresh world. It stops at
// the first failing step and returns the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, log *logging.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		log.Info(ctx, "scenario step", "step", i+1, "of", len(scenario.Steps), "preset", cfg.Name)

		result, err := runConfig(ctx, cfg, log)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, StepResult{Config: cfg, Result: result})
	}
	return results, nil
}

// runConfig runs cfg on a fresh world with the standard metrics attached.
func runConfig(ctx context.Context, cfg *config.Config, log *logging.Logger) (*sim.Result, error) {
	spawners, err := cfg.Spawners(cfg.Seed)
	if err != nil {
		return nil, err
	}
	s := sim.New(cfg.BuildSolver(), spawners...)
	s.SetLogger(log)
	s.AddMetric(metrics.NewKineticEnergy(cfg.FrameDt / physics.SubSteps))
	s.AddMetric(metrics.NewOverlap())
	s.AddMetric(metrics.NewContainment(cfg.Boundary(), 1e-6))
	return s.Run(ctx, dynamo.NewWorld(), sim.Config{FrameDt: cfg.FrameDt, Frames: cfg.Frames, ValidateState: true})
}

// GravitySweep runs a base config across evenly spaced gravity values.
type GravitySweep struct {
	Base     *config.Config
	Min, Max float64
	NumSteps int
}

type SweepResult struct {
	Gravity       float64
	Bodies        int
	MeanKinetic   float64
	MaxOverlap    float64
	Containment   float64
	FinalSnapshot []dynamo.BodyView
}

func RunSweep(ctx context.Context, sweep *GravitySweep, log *logging.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)
	step := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		cfg := *sweep.Base
		g := sweep.Min + float64(i)*step
		cfg.Solver.Gravity = dynamo.Vec(0, g)

		result, err := runConfig(ctx, &cfg, log)
		if err != nil {
			return results, fmt.Errorf("gravity %.1f: %w", g, err)
		}
		results = append(results, SweepResult{
			Gravity:       g,
			Bodies:        len(result.Final),
			MeanKinetic:   result.Metrics["kinetic_energy"],
			MaxOverlap:    result.Metrics["max_overlap"],
			Containment:   result.Metrics["containment"],
			FinalSnapshot: result.Final,
		})
		log.Debug(ctx, "sweep point", "gravity", g, "bodies", len(result.Final))
	}
	return results, nil
}
