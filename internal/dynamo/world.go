package dynamo

import (
	"fmt"
	"math"
)

// BodyID identifies a body by its insertion index. IDs stay valid for the
// lifetime of the world since bodies are never removed.
type BodyID int

// BodyView is the render/serialization view of a body.
type BodyView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// World is an append-only, insertion-ordered set of bodies stored contiguously.
type World struct {
	bodies []Body
}

func NewWorld() *World {
	return &World{bodies: make([]Body, 0, 64)}
}

// Spawn appends a body at rest at (x, y). A rejected spawn leaves the world
// unchanged.
func (w *World) Spawn(x, y, radius float64) (BodyID, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return -1, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	pos := Vec(x, y)
	if !pos.IsFinite() {
		return -1, fmt.Errorf("%w: (%v, %v)", ErrInvalidPosition, x, y)
	}
	w.bodies = append(w.bodies, newBody(pos, radius))
	return BodyID(len(w.bodies) - 1), nil
}

func (w *World) Body(id BodyID) (Body, bool) {
	if id < 0 || int(id) >= len(w.bodies) {
		return Body{}, false
	}
	return w.bodies[id], true
}

func (w *World) Len() int { return len(w.bodies) }

// Bodies exposes the backing slice so the solver can mutate bodies in place.
// The slice is invalidated by the next Spawn.
func (w *World) Bodies() []Body { return w.bodies }

// Snapshot copies every body's position and radius in insertion order.
func (w *World) Snapshot() []BodyView {
	snap := make([]BodyView, len(w.bodies))
	for i := range w.bodies {
		snap[i] = w.bodies[i].View()
	}
	return snap
}

// IsValid reports whether every body position is finite.
func (w *World) IsValid() bool {
	for i := range w.bodies {
		if !w.bodies[i].Current.IsFinite() || !w.bodies[i].Previous.IsFinite() {
			return false
		}
	}
	return true
}

// Reset discards all bodies.
func (w *World) Reset() {
	w.bodies = w.bodies[:0]
}

// Metric aggregates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(bodies []Body, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every frame with the frame's snapshot.
type Observer interface {
	OnFrame(frame int, t float64, snap []BodyView)
}
