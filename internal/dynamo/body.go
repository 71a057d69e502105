package dynamo

// Body is a circle integrated with Störmer–Verlet. Velocity is never stored;
// it is the difference between Current and Previous.
type Body struct {
	Current      Vector
	Previous     Vector
	Acceleration Vector
	Radius       float64
}

func newBody(pos Vector, radius float64) Body {
	return Body{
		Current:  pos,
		Previous: pos,
		Radius:   radius,
	}
}

// Accelerate accumulates a force for the current sub-step.
func (b *Body) Accelerate(force Vector) {
	b.Acceleration = b.Acceleration.Add(force)
}

// Integrate advances the body by one Verlet step of length dt and clears the
// accumulated acceleration.
func (b *Body) Integrate(dt float64) {
	velocity := b.Current.Sub(b.Previous)
	b.Previous = b.Current
	b.Current = b.Current.Add(velocity).Add(b.Acceleration.Scale(dt * dt))
	b.Acceleration = Zero
}

// Velocity returns the displacement covered during the last step.
func (b Body) Velocity() Vector {
	return b.Current.Sub(b.Previous)
}

func (b Body) View() BodyView {
	return BodyView{X: b.Current.X, Y: b.Current.Y, Radius: b.Radius}
}
