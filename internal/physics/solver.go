package physics

import "github.com/san-kum/verletsim/internal/dynamo"

const (
	// SubSteps is the number of integration sub-steps per frame.
	SubSteps = 8

	DefaultFrameDt  = 0.016
	DefaultGravityY = 1000.0
	DefaultCenterX  = 300.0
	DefaultCenterY  = 300.0
	DefaultRadius   = 300.0
)

// FallbackAxis replaces the normalized axis when two positions coincide.
var FallbackAxis = dynamo.Vec(1, 0)

// Boundary is the circle every body is kept inside.
type Boundary struct {
	Center dynamo.Vector
	Radius float64
}

func DefaultBoundary() Boundary {
	return Boundary{Center: dynamo.Vec(DefaultCenterX, DefaultCenterY), Radius: DefaultRadius}
}

// Contains reports whether a circle of radius r centered at p lies inside the
// boundary, allowing tol of slack.
func (bd Boundary) Contains(p dynamo.Vector, r, tol float64) bool {
	return p.Sub(bd.Center).Length() <= bd.Radius-r+tol
}

// Solver holds the fixed parameters of a simulation. It keeps no per-world
// state, so one Solver can step any number of worlds.
type Solver struct {
	Gravity  dynamo.Vector
	Boundary Boundary
}

func NewSolver(gravity dynamo.Vector, boundary Boundary) *Solver {
	return &Solver{Gravity: gravity, Boundary: boundary}
}

func DefaultSolver() *Solver {
	return NewSolver(dynamo.Vec(0, DefaultGravityY), DefaultBoundary())
}

// Step advances w by frameDt and returns the resulting snapshot.
func (s *Solver) Step(w *dynamo.World, frameDt float64) []dynamo.BodyView {
	subDt := frameDt / SubSteps
	bodies := w.Bodies()
	for i := 0; i < SubSteps; i++ {
		s.applyGravity(bodies)
		s.applyConstraint(bodies)
		s.solveCollisions(bodies)
		s.integrate(bodies, subDt)
	}
	return w.Snapshot()
}

func (s *Solver) applyGravity(bodies []dynamo.Body) {
	for i := range bodies {
		bodies[i].Accelerate(s.Gravity)
	}
}

func (s *Solver) applyConstraint(bodies []dynamo.Body) {
	center, radius := s.Boundary.Center, s.Boundary.Radius
	for i := range bodies {
		b := &bodies[i]
		diff := b.Current.Sub(center)
		dist := diff.Length()
		limit := radius - b.Radius
		if dist > limit {
			b.Current = center.Add(axis(diff, dist).Scale(limit))
		}
	}
}

func (s *Solver) solveCollisions(bodies []dynamo.Body) {
	n := len(bodies)
	for i := 0; i < n; i++ {
		b1 := &bodies[i]
		for j := i + 1; j < n; j++ {
			b2 := &bodies[j]
			collisionAxis := b1.Current.Sub(b2.Current)
			dist := collisionAxis.Length()
			minDist := b1.Radius + b2.Radius
			if dist >= minDist {
				continue
			}
			push := axis(collisionAxis, dist).Scale(0.5 * (minDist - dist))
			b1.Current = b1.Current.Add(push)
			b2.Current = b2.Current.Sub(push)
		}
	}
}

func (s *Solver) integrate(bodies []dynamo.Body, dt float64) {
	for i := range bodies {
		bodies[i].Integrate(dt)
	}
}

// axis normalizes d, whose length is dist. A zero length yields FallbackAxis
// so no NaN ever reaches a position.
func axis(d dynamo.Vector, dist float64) dynamo.Vector {
	if dist == 0 {
		return FallbackAxis
	}
	return d.Divide(dist)
}
