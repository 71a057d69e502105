package sim

import (
	"fmt"

	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/physics"
)

// Config controls a frame run.
type Config struct {
	FrameDt       float64
	Frames        int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		FrameDt:       physics.DefaultFrameDt,
		Frames:        600,
		ValidateState: true,
	}
}

func (c Config) validate() error {
	if c.FrameDt <= 0 {
		return fmt.Errorf("frame dt must be positive, got %f", c.FrameDt)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	return nil
}

// FrameStat summarizes the world after one frame.
type FrameStat struct {
	Frame   int
	Time    float64
	Bodies  int
	Kinetic float64
	Overlap float64
}

type Result struct {
	Frames     []FrameStat
	Final      []dynamo.BodyView
	Metrics    map[string]float64
	Rejected   int
	StepsTaken int
}
