package metrics

import (
	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/physics"
)

// Containment is the fraction of observed frames in which every body sat
// inside the boundary, within tolerance.
type Containment struct {
	name       string
	boundary   physics.Boundary
	tolerance  float64
	violations int
	samples    int
}

func NewContainment(boundary physics.Boundary, tolerance float64) *Containment {
	return &Containment{
		name:      "containment",
		boundary:  boundary,
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(bodies []dynamo.Body, t float64) {
	c.samples++
	for i := range bodies {
		if !c.boundary.Contains(bodies[i].Current, bodies[i].Radius, c.tolerance) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
