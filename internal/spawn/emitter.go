// Package spawn decides when, where and how large new bodies appear.
package spawn

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/san-kum/verletsim/internal/dynamo"
)

// Spawner adds bodies to a world at the start of a frame. Frames are
// numbered from 1.
type Spawner interface {
	Spawn(w *dynamo.World, frame int) (int, error)
}

// Emitter drops one body at each of its points every Every frames. An
// Emitter built as a literal draws radii from seed 1.
type Emitter struct {
	Every     int
	Points    []dynamo.Vector
	RadiusMin float64
	RadiusMax float64
	// MaxBodies caps the world population; 0 means no cap.
	MaxBodies int

	rng *rand.Rand
}

func NewEmitter(every int, points []dynamo.Vector, radiusMin, radiusMax float64, seed int64) (*Emitter, error) {
	if every <= 0 {
		return nil, fmt.Errorf("emitter: every must be positive, got %d", every)
	}
	if len(points) == 0 {
		return nil, errors.New("emitter: at least one point is required")
	}
	if radiusMin <= 0 {
		return nil, fmt.Errorf("emitter: radius_min must be positive, got %f", radiusMin)
	}
	if radiusMax < radiusMin {
		return nil, fmt.Errorf("emitter: radius_max %f is below radius_min %f", radiusMax, radiusMin)
	}
	pts := make([]dynamo.Vector, len(points))
	copy(pts, points)
	return &Emitter{
		Every:     every,
		Points:    pts,
		RadiusMin: radiusMin,
		RadiusMax: radiusMax,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// Spawn fires on frames divisible by Every. Rejected bodies are reported
// through the joined error; the rest are still spawned.
func (e *Emitter) Spawn(w *dynamo.World, frame int) (int, error) {
	if frame <= 0 || e.Every <= 0 || frame%e.Every != 0 {
		return 0, nil
	}
	spawned := 0
	var errs []error
	for _, p := range e.Points {
		if e.MaxBodies > 0 && w.Len() >= e.MaxBodies {
			break
		}
		if _, err := w.Spawn(p.X, p.Y, e.radius()); err != nil {
			errs = append(errs, err)
			continue
		}
		spawned++
	}
	return spawned, errors.Join(errs...)
}

func (e *Emitter) radius() float64 {
	if e.RadiusMax == e.RadiusMin {
		return e.RadiusMin
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1))
	}
	return e.RadiusMin + e.rng.Float64()*(e.RadiusMax-e.RadiusMin)
}
