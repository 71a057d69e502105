// Package dynamo provides the core value types of the circle simulation.
//
// The package defines the data the solver operates on:
//
//   - [Vector]: 2D point or displacement
//   - [Body]: a circle integrated with position Verlet
//   - [World]: ordered, append-only collection of bodies
//   - [BodyView]: read-only render/serialization view of a body
//   - [Metric], [Observer]: hooks for the frame runner
//
// # Example
//
//	w := dynamo.NewWorld()
//	if _, err := w.Spawn(300, 50, 5); err != nil {
//	    // errors.Is(err, dynamo.ErrInvalidRadius)
//	}
//	snap := physics.DefaultSolver().Step(w, 0.016)
//
// # Thread Safety
//
// World is NOT thread-safe. Spawning and stepping are expected to run on one
// goroutine; hosts that spawn from elsewhere should go through the sim package queue.
package dynamo
