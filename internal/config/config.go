package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/spawn"
)

const (
	DefaultFrames = 600
	DefaultSeed   = 42
	DefaultEvery  = 16
	DefaultRadius = 5.0
)

type Config struct {
	Name      string          `yaml:"name"`
	FrameDt   float64         `yaml:"frame_dt"`
	Frames    int             `yaml:"frames"`
	Seed      int64           `yaml:"seed"`
	MaxBodies int             `yaml:"max_bodies"`
	Solver    SolverConfig    `yaml:"solver"`
	Emitters  []EmitterConfig `yaml:"emitters"`
}

type SolverConfig struct {
	Gravity  dynamo.Vector  `yaml:"gravity"`
	Boundary BoundaryConfig `yaml:"boundary"`
}

type BoundaryConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

type EmitterConfig struct {
	Every     int             `yaml:"every"`
	RadiusMin float64         `yaml:"radius_min"`
	RadiusMax float64         `yaml:"radius_max"`
	Points    []dynamo.Vector `yaml:"points"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:    "default",
		FrameDt: physics.DefaultFrameDt,
		Frames:  DefaultFrames,
		Seed:    DefaultSeed,
		Solver: SolverConfig{
			Gravity: dynamo.Vec(0, physics.DefaultGravityY),
			Boundary: BoundaryConfig{
				X:      physics.DefaultCenterX,
				Y:      physics.DefaultCenterY,
				Radius: physics.DefaultRadius,
			},
		},
		Emitters: []EmitterConfig{{
			Every:     DefaultEvery,
			RadiusMin: DefaultRadius,
			RadiusMax: DefaultRadius,
			Points:    []dynamo.Vector{dynamo.Vec(200, 50), dynamo.Vec(300, 50), dynamo.Vec(400, 50)},
		}},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if !(c.FrameDt > 0) {
		errs = append(errs, fmt.Errorf("frame_dt must be positive, got %v", c.FrameDt))
	}
	if c.Frames <= 0 {
		errs = append(errs, fmt.Errorf("frames must be positive, got %d", c.Frames))
	}
	if c.MaxBodies < 0 {
		errs = append(errs, fmt.Errorf("max_bodies must not be negative, got %d", c.MaxBodies))
	}
	if !c.Solver.Gravity.IsFinite() {
		errs = append(errs, fmt.Errorf("solver.gravity must be finite"))
	}
	b := c.Solver.Boundary
	if !(b.Radius > 0) || math.IsInf(b.Radius, 0) {
		errs = append(errs, fmt.Errorf("solver.boundary.radius must be positive, got %v", b.Radius))
	}
	if !dynamo.Vec(b.X, b.Y).IsFinite() {
		errs = append(errs, fmt.Errorf("solver.boundary center must be finite"))
	}
	for i, e := range c.Emitters {
		if e.Every <= 0 {
			errs = append(errs, fmt.Errorf("emitters[%d].every must be positive, got %d", i, e.Every))
		}
		if !(e.RadiusMin > 0) {
			errs = append(errs, fmt.Errorf("emitters[%d].radius_min must be positive, got %v", i, e.RadiusMin))
		}
		if e.RadiusMax < e.RadiusMin {
			errs = append(errs, fmt.Errorf("emitters[%d].radius_max %v below radius_min %v", i, e.RadiusMax, e.RadiusMin))
		}
		if len(e.Points) == 0 {
			errs = append(errs, fmt.Errorf("emitters[%d].points must not be empty", i))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) Boundary() physics.Boundary {
	b := c.Solver.Boundary
	return physics.Boundary{Center: dynamo.Vec(b.X, b.Y), Radius: b.Radius}
}

// BuildSolver returns the solver described by the solver section.
func (c *Config) BuildSolver() *physics.Solver {
	return physics.NewSolver(c.Solver.Gravity, c.Boundary())
}

// Spawners builds one emitter per configured entry. Emitter i draws from
// seed+i so emitters with random radii do not share a sequence.
func (c *Config) Spawners(seed int64) ([]spawn.Spawner, error) {
	out := make([]spawn.Spawner, 0, len(c.Emitters))
	for i, ec := range c.Emitters {
		e, err := spawn.NewEmitter(ec.Every, ec.Points, ec.RadiusMin, ec.RadiusMax, seed+int64(i))
		if err != nil {
			return nil, fmt.Errorf("emitters[%d]: %w", i, err)
		}
		e.MaxBodies = c.MaxBodies
		out = append(out, e)
	}
	return out, nil
}
