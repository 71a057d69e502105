package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/logging"
	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/spawn"
)

// Simulator drives a world frame by frame: queued spawns, spawn policy,
// then one solver step.
type Simulator struct {
	solver    *physics.Solver
	spawners  []spawn.Spawner
	queue     *Queue
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	log       *logging.Logger
}

func New(solver *physics.Solver, spawners ...spawn.Spawner) *Simulator {
	return &Simulator{
		solver:    solver,
		spawners:  spawners,
		queue:     NewQueue(),
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		log:       logging.Discard(),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *logging.Logger)   { s.log = l }

func (s *Simulator) Solver() *physics.Solver { return s.solver }

// Queue returns the spawn queue drained at the start of every frame.
func (s *Simulator) Queue() *Queue { return s.queue }

// Frame advances w by one frame and returns its snapshot together with the
// number of rejected spawns.
func (s *Simulator) Frame(ctx context.Context, w *dynamo.World, frame int, dt float64) ([]dynamo.BodyView, int) {
	rejected := 0
	if _, err := s.queue.Drain(w); err != nil {
		rejected += countJoined(err)
		s.log.Debug(ctx, "queued spawn rejected", "frame", frame, "error", err)
	}
	for _, sp := range s.spawners {
		if _, err := sp.Spawn(w, frame); err != nil {
			rejected += countJoined(err)
			s.log.Debug(ctx, "emitter spawn rejected", "frame", frame, "error", err)
		}
	}
	return s.solver.Step(w, dt), rejected
}

func (s *Simulator) Run(ctx context.Context, w *dynamo.World, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Frames:  make([]FrameStat, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	subDt := cfg.FrameDt / physics.SubSteps
	t := 0.0

	for frame := 1; frame <= cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			s.collect(result, w)
			return result, &dynamo.SimulationError{Frame: frame, Time: t, Wrapped: errors.Join(dynamo.ErrContextCanceled, ctx.Err())}
		default:
		}

		snap, rejected := s.Frame(ctx, w, frame, cfg.FrameDt)
		result.Rejected += rejected
		t += cfg.FrameDt
		result.StepsTaken++

		if cfg.ValidateState && !w.IsValid() {
			err := &dynamo.SimulationError{Frame: frame, Time: t, Wrapped: dynamo.ErrInvalidState}
			s.log.Error(ctx, "state validation failed", err, "bodies", w.Len())
			s.collect(result, w)
			return result, err
		}

		bodies := w.Bodies()
		result.Frames = append(result.Frames, FrameStat{
			Frame:   frame,
			Time:    t,
			Bodies:  len(bodies),
			Kinetic: metrics.Kinetic(bodies, subDt),
			Overlap: metrics.MaxPenetration(bodies),
		})

		for _, m := range s.metrics {
			m.Observe(bodies, t)
		}
		for _, obs := range s.observers {
			obs.OnFrame(frame, t, snap)
		}
	}

	s.collect(result, w)
	s.log.Debug(ctx, "run finished", "frames", result.StepsTaken, "bodies", w.Len(), "rejected", result.Rejected)
	return result, nil
}

func (s *Simulator) collect(result *Result, w *dynamo.World) {
	result.Final = w.Snapshot()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// RunWithCallback steps w until cfg.Frames frames have run or fn returns
// false.
func (s *Simulator) RunWithCallback(ctx context.Context, w *dynamo.World, cfg Config, fn func(frame int, t float64, snap []dynamo.BodyView) bool) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	t := 0.0
	for frame := 1; frame <= cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		snap, _ := s.Frame(ctx, w, frame, cfg.FrameDt)
		t += cfg.FrameDt

		if cfg.ValidateState && !w.IsValid() {
			return fmt.Errorf("frame %d: %w", frame, dynamo.ErrInvalidState)
		}
		if !fn(frame, t, snap) {
			return nil
		}
	}
	return nil
}

// countJoined counts the errors behind an errors.Join result.
func countJoined(err error) int {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return len(j.Unwrap())
	}
	return 1
}
