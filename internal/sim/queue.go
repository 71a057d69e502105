package sim

import (
	"errors"
	"sync"

	"github.com/san-kum/verletsim/internal/dynamo"
)

// Request is a pending spawn.
type Request struct {
	X, Y, Radius float64
}

// Queue collects spawn requests from any goroutine. The world itself is
// only touched by the goroutine that drains the queue.
type Queue struct {
	mu      sync.Mutex
	pending []Request
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(x, y, radius float64) {
	q.mu.Lock()
	q.pending = append(q.pending, Request{X: x, Y: y, Radius: radius})
	q.mu.Unlock()
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain spawns every pending request into w in push order and reports how
// many were accepted. Rejections are joined into the returned error.
func (q *Queue) Drain(w *dynamo.World) (int, error) {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()

	spawned := 0
	var errs []error
	for _, r := range pending {
		if _, err := w.Spawn(r.X, r.Y, r.Radius); err != nil {
			errs = append(errs, err)
			continue
		}
		spawned++
	}
	return spawned, errors.Join(errs...)
}
