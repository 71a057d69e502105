// Package physics steps a [dynamo.World] of circles confined to a circular
// boundary.
//
// Each call to [Solver.Step] splits the frame into [SubSteps] equal sub-steps
// and runs four phases per sub-step, always in this order:
//
//  1. gravity: every body accumulates the solver's gravity
//  2. constraint: bodies poking out of the boundary are clamped back onto it
//  3. collisions: every overlapping pair is pushed apart, half each
//  4. integration: position Verlet with the sub-step dt
//
// The constraint and collision phases move Current directly; the next
// integration turns those corrections into implicit velocity.
//
// Collisions are resolved in a single O(n²) pass per sub-step, so deep piles
// only settle approximately over the sub-steps of a frame.
//
// # Example
//
//	w := dynamo.NewWorld()
//	w.Spawn(300, 50, 5)
//	s := physics.DefaultSolver()
//	for frame := 0; frame < 60; frame++ {
//	    snap := s.Step(w, physics.DefaultFrameDt)
//	    draw(snap)
//	}
package physics
