package metrics

import "github.com/san-kum/verletsim/internal/dynamo"

// MaxPenetration returns the deepest overlap between any two bodies.
func MaxPenetration(bodies []dynamo.Body) float64 {
	worst := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			dist := bodies[i].Current.Sub(bodies[j].Current).Length()
			if depth := bodies[i].Radius + bodies[j].Radius - dist; depth > worst {
				worst = depth
			}
		}
	}
	return worst
}

// Overlap tracks the worst penetration seen across a run.
type Overlap struct {
	name  string
	worst float64
}

func NewOverlap() *Overlap {
	return &Overlap{name: "max_overlap"}
}

func (o *Overlap) Name() string { return o.name }

func (o *Overlap) Observe(bodies []dynamo.Body, t float64) {
	if d := MaxPenetration(bodies); d > o.worst {
		o.worst = d
	}
}

func (o *Overlap) Value() float64 { return o.worst }

func (o *Overlap) Reset() { o.worst = 0 }

// Population tracks the peak body count.
type Population struct {
	name string
	peak int
}

func NewPopulation() *Population {
	return &Population{name: "bodies"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(bodies []dynamo.Body, t float64) {
	if len(bodies) > p.peak {
		p.peak = len(bodies)
	}
}

func (p *Population) Value() float64 { return float64(p.peak) }

func (p *Population) Reset() { p.peak = 0 }
