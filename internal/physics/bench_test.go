package physics

import (
	"testing"

	"github.com/san-kum/verletsim/internal/dynamo"
)

func benchWorld(n int) *dynamo.World {
	w := dynamo.NewWorld()
	for i := 0; i < n; i++ {
		w.Spawn(150+float64(i%30)*10, 100+float64(i/30)*10, 5)
	}
	return w
}

func benchmarkStep(b *testing.B, n int) {
	s := DefaultSolver()
	w := benchWorld(n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(w, DefaultFrameDt)
	}
}

func BenchmarkStep10(b *testing.B)  { benchmarkStep(b, 10) }
func BenchmarkStep100(b *testing.B) { benchmarkStep(b, 100) }
func BenchmarkStep500(b *testing.B) { benchmarkStep(b, 500) }
