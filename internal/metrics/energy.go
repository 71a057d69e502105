package metrics

import (
	"math"

	"github.com/san-kum/verletsim/internal/dynamo"
)

// Kinetic returns Σ ½·m·|v|² with m = π·r² and v derived from the last
// sub-step displacement.
func Kinetic(bodies []dynamo.Body, subDt float64) float64 {
	if subDt <= 0 {
		return 0
	}
	total := 0.0
	for i := range bodies {
		v := bodies[i].Velocity().Divide(subDt)
		mass := math.Pi * bodies[i].Radius * bodies[i].Radius
		total += 0.5 * mass * (v.X*v.X + v.Y*v.Y)
	}
	return total
}

// KineticEnergy is the mean kinetic energy over the observed frames.
type KineticEnergy struct {
	name    string
	subDt   float64
	samples int
	total   float64
}

func NewKineticEnergy(subDt float64) *KineticEnergy {
	return &KineticEnergy{
		name:  "kinetic_energy",
		subDt: subDt,
	}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(bodies []dynamo.Body, t float64) {
	e.total += Kinetic(bodies, e.subDt)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}
