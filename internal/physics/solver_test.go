package physics

import (
	"math"
	"testing"

	"github.com/san-kum/verletsim/internal/dynamo"
)

func TestAxis(t *testing.T) {
	tests := []struct {
		name string
		d    dynamo.Vector
		want dynamo.Vector
	}{
		{"unit x", dynamo.Vec(4, 0), dynamo.Vec(1, 0)},
		{"diagonal", dynamo.Vec(3, 4), dynamo.Vec(0.6, 0.8)},
		{"negative y", dynamo.Vec(0, -2), dynamo.Vec(0, -1)},
		{"degenerate", dynamo.Zero, FallbackAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := axis(tt.d, tt.d.Length())
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("axis(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestApplyConstraint(t *testing.T) {
	s := NewSolver(dynamo.Zero, DefaultBoundary())
	bodies := []dynamo.Body{
		{Current: dynamo.Vec(300, 300), Radius: 10},
		{Current: dynamo.Vec(300+400, 300), Radius: 10},
		{Current: dynamo.Vec(300-300, 300-400), Radius: 50},
	}

	s.applyConstraint(bodies)

	if bodies[0].Current != dynamo.Vec(300, 300) {
		t.Errorf("inner body moved to %v", bodies[0].Current)
	}
	if bodies[1].Current != dynamo.Vec(590, 300) {
		t.Errorf("outer body clamped to %v, want (590, 300)", bodies[1].Current)
	}
	got := bodies[2].Current.Sub(s.Boundary.Center)
	if math.Abs(got.Length()-250) > 1e-9 {
		t.Errorf("diagonal body at distance %v, want 250", got.Length())
	}
	if math.Abs(got.X/got.Y-0.75) > 1e-9 {
		t.Errorf("diagonal body left its radial line: %v", got)
	}
}

func TestApplyConstraint_OversizedBodyAtCenter(t *testing.T) {
	s := NewSolver(dynamo.Zero, Boundary{Center: dynamo.Vec(0, 0), Radius: 10})
	bodies := []dynamo.Body{{Current: dynamo.Zero, Radius: 15}}

	s.applyConstraint(bodies)

	if !bodies[0].Current.IsFinite() {
		t.Fatalf("non-finite position %v", bodies[0].Current)
	}
	if bodies[0].Current != dynamo.Vec(-5, 0) {
		t.Errorf("oversized body at %v, want (-5, 0)", bodies[0].Current)
	}
}

func TestSolveCollisions_SinglePass(t *testing.T) {
	s := NewSolver(dynamo.Zero, DefaultBoundary())
	bodies := []dynamo.Body{
		{Current: dynamo.Vec(0, 0), Radius: 5},
		{Current: dynamo.Vec(8, 0), Radius: 5},
		{Current: dynamo.Vec(100, 0), Radius: 5},
	}

	s.solveCollisions(bodies)

	if bodies[0].Current != dynamo.Vec(-1, 0) {
		t.Errorf("first body at %v, want (-1, 0)", bodies[0].Current)
	}
	if bodies[1].Current != dynamo.Vec(9, 0) {
		t.Errorf("second body at %v, want (9, 0)", bodies[1].Current)
	}
	if bodies[2].Current != dynamo.Vec(100, 0) {
		t.Errorf("distant body moved to %v", bodies[2].Current)
	}
}

func TestSolveCollisions_TouchingIsNotOverlap(t *testing.T) {
	s := NewSolver(dynamo.Zero, DefaultBoundary())
	bodies := []dynamo.Body{
		{Current: dynamo.Vec(0, 0), Radius: 5},
		{Current: dynamo.Vec(10, 0), Radius: 5},
	}

	s.solveCollisions(bodies)

	if bodies[0].Current != dynamo.Vec(0, 0) || bodies[1].Current != dynamo.Vec(10, 0) {
		t.Errorf("touching bodies moved: %v %v", bodies[0].Current, bodies[1].Current)
	}
}

func TestStep_SnapshotMatchesWorld(t *testing.T) {
	w := dynamo.NewWorld()
	w.Spawn(200, 50, 5)
	w.Spawn(300, 50, 7)
	w.Spawn(400, 50, 9)

	snap := DefaultSolver().Step(w, DefaultFrameDt)

	if len(snap) != 3 {
		t.Fatalf("expected 3 views, got %d", len(snap))
	}
	for i, v := range snap {
		b, _ := w.Body(dynamo.BodyID(i))
		if v != b.View() {
			t.Errorf("snapshot[%d] = %+v, body = %+v", i, v, b.View())
		}
	}
	if snap[2].Radius != 9 {
		t.Errorf("expected insertion order to be preserved, got radius %v", snap[2].Radius)
	}
}

func TestBoundaryContains(t *testing.T) {
	bd := DefaultBoundary()
	if !bd.Contains(dynamo.Vec(300, 590), 10, 0) {
		t.Error("body touching the boundary should be contained")
	}
	if bd.Contains(dynamo.Vec(300, 591), 10, 0) {
		t.Error("body crossing the boundary should not be contained")
	}
	if !bd.Contains(dynamo.Vec(300, 591), 10, 1) {
		t.Error("tolerance should be applied")
	}
}
