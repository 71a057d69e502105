package physics

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/verletsim/internal/dynamo"
)

const eps = 1e-9

func mustSpawn(w *dynamo.World, x, y, r float64) dynamo.BodyID {
	id, err := w.Spawn(x, y, r)
	Expect(err).NotTo(HaveOccurred())
	return id
}

func mustBody(w *dynamo.World, id dynamo.BodyID) dynamo.Body {
	b, ok := w.Body(id)
	Expect(ok).To(BeTrue())
	return b
}

var _ = Describe("Solver", func() {
	var (
		w          *dynamo.World
		weightless *Solver
	)

	BeforeEach(func() {
		w = dynamo.NewWorld()
		weightless = NewSolver(dynamo.Zero, DefaultBoundary())
	})

	Context("with an empty world", func() {
		It("returns an empty snapshot", func() {
			Expect(DefaultSolver().Step(w, DefaultFrameDt)).To(BeEmpty())
		})
	})

	Context("without gravity", func() {
		It("leaves an isolated body at rest where it was spawned", func() {
			a := mustSpawn(w, 300, 300, 10)
			b := mustSpawn(w, 100, 300, 10)

			weightless.Step(w, DefaultFrameDt)

			Expect(mustBody(w, a).Current).To(Equal(dynamo.Vec(300, 300)))
			Expect(mustBody(w, b).Current).To(Equal(dynamo.Vec(100, 300)))
		})

		It("clamps a body spawned outside the boundary onto its inner offset circle", func() {
			id := mustSpawn(w, 300, 700, 10)

			weightless.Step(w, DefaultFrameDt)

			b := mustBody(w, id)
			dist := b.Current.Sub(weightless.Boundary.Center).Length()
			Expect(dist).To(BeNumerically("~", DefaultRadius-10, eps))
		})

		It("separates two coincident bodies along the fallback axis", func() {
			a := mustSpawn(w, 300, 300, 10)
			b := mustSpawn(w, 300, 300, 10)

			weightless.Step(w, DefaultFrameDt)

			pa, pb := mustBody(w, a).Current, mustBody(w, b).Current
			Expect(pa.IsFinite()).To(BeTrue())
			Expect(pb.IsFinite()).To(BeTrue())
			Expect(pa).NotTo(Equal(pb))
			Expect(pa.Sub(pb).Length()).To(BeNumerically(">=", 20))
			Expect(pa.Y).To(Equal(pb.Y))
		})

		It("pushes an overlapping pair apart by exactly the penetration in one pass", func() {
			a := mustSpawn(w, 297, 300, 5)
			b := mustSpawn(w, 303, 300, 5)

			weightless.solveCollisions(w.Bodies())

			pa, pb := mustBody(w, a).Current, mustBody(w, b).Current
			Expect(pa).To(Equal(dynamo.Vec(295, 300)))
			Expect(pb).To(Equal(dynamo.Vec(305, 300)))
			Expect(pa.Sub(pb).Length()).To(BeNumerically("~", 10, eps))
		})

		It("leaves an overlapping pair farther apart after a full step", func() {
			a := mustSpawn(w, 297, 300, 5)
			b := mustSpawn(w, 303, 300, 5)

			weightless.Step(w, DefaultFrameDt)

			dist := mustBody(w, a).Current.Sub(mustBody(w, b).Current).Length()
			Expect(dist).To(BeNumerically(">", 6))
		})
	})

	Context("with gravity", func() {
		It("matches sub-stepped Verlet under constant acceleration", func() {
			s := DefaultSolver()
			id := mustSpawn(w, 300, 300, 5)

			s.Step(w, DefaultFrameDt)

			// same equations, unrolled by hand
			subDt := DefaultFrameDt / SubSteps
			pos, prev := 300.0, 300.0
			for i := 0; i < SubSteps; i++ {
				v := pos - prev
				prev = pos
				pos = pos + v + DefaultGravityY*subDt*subDt
			}

			b := mustBody(w, id)
			Expect(b.Current.X).To(Equal(300.0))
			Expect(b.Current.Y).To(BeNumerically("~", pos, eps))
			Expect(b.Current.Y-300).To(BeNumerically("~", 36*DefaultGravityY*subDt*subDt, eps))
			Expect(b.Acceleration).To(Equal(dynamo.Zero))
		})

		It("keeps a resting body on the boundary frame after frame", func() {
			s := DefaultSolver()
			id := mustSpawn(w, 300, 590, 10)
			subDt := DefaultFrameDt / SubSteps

			for frame := 0; frame < 60; frame++ {
				s.Step(w, DefaultFrameDt)
			}

			dist := mustBody(w, id).Current.Sub(s.Boundary.Center).Length()
			Expect(math.Abs(dist - 290)).To(BeNumerically("<=", DefaultGravityY*subDt*subDt+eps))
		})

		It("keeps a small pile finite and inside the boundary", func() {
			s := DefaultSolver()
			for i := 0; i < 30; i++ {
				mustSpawn(w, 200+float64(i%10)*20, 50+float64(i/10)*20, 5)
			}

			var snap []dynamo.BodyView
			for frame := 0; frame < 240; frame++ {
				snap = s.Step(w, DefaultFrameDt)
			}

			Expect(w.IsValid()).To(BeTrue())
			Expect(snap).To(HaveLen(30))
			for _, v := range snap {
				Expect(s.Boundary.Contains(dynamo.Vec(v.X, v.Y), v.Radius, v.Radius)).To(BeTrue())
			}
		})
	})
})
