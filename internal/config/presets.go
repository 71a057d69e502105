package config

import (
	"maps"
	"slices"

	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/physics"
)

var defaultSolver = SolverConfig{
	Gravity: dynamo.Vec(0, physics.DefaultGravityY),
	Boundary: BoundaryConfig{
		X: physics.DefaultCenterX, Y: physics.DefaultCenterY, Radius: physics.DefaultRadius,
	},
}

var rainPoints = []dynamo.Vector{dynamo.Vec(200, 50), dynamo.Vec(300, 50), dynamo.Vec(400, 50)}

var Presets = map[string]*Config{
	"rain": {
		Name: "rain", FrameDt: 0.016, Frames: 600, Seed: 42,
		Solver:   defaultSolver,
		Emitters: []EmitterConfig{{Every: 16, RadiusMin: 5, RadiusMax: 5, Points: rainPoints}},
	},
	"scatter": {
		Name: "scatter", FrameDt: 0.016, Frames: 900, Seed: 42,
		Solver: defaultSolver,
		Emitters: []EmitterConfig{{
			Every: 25, RadiusMin: 5, RadiusMax: 10,
			Points: []dynamo.Vector{dynamo.Vec(250, 80), dynamo.Vec(350, 80)},
		}},
	},
	"heavy": {
		Name: "heavy", FrameDt: 0.016, Frames: 600, Seed: 42,
		Solver: SolverConfig{
			Gravity:  dynamo.Vec(0, 20000),
			Boundary: defaultSolver.Boundary,
		},
		Emitters: []EmitterConfig{{Every: 16, RadiusMin: 5, RadiusMax: 5, Points: rainPoints}},
	},
	"still": {
		Name: "still", FrameDt: 0.016, Frames: 300, Seed: 42,
		Solver: SolverConfig{Boundary: defaultSolver.Boundary},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Emitters = make([]EmitterConfig, len(p.Emitters))
	for i, e := range p.Emitters {
		e.Points = slices.Clone(e.Points)
		cfg.Emitters[i] = e
	}
	return &cfg
}

func ListPresets() []string {
	return slices.Sorted(maps.Keys(Presets))
}
