// Package frame defines the per-display-frame scheduling primitive shared by
// the stroke engine and the letters layer.
package frame

// ID identifies an outstanding frame request. The zero ID means "none".
type ID uint64

// Scheduler runs a callback once on the next display frame.
type Scheduler interface {
	// RequestFrame schedules fn for the next frame and returns a non-zero ID.
	RequestFrame(fn func()) ID
	// CancelFrame drops a request that has not run yet. Unknown IDs are ignored.
	CancelFrame(id ID)
}

type request struct {
	id ID
	fn func()
}

// Queue keeps pending requests in submission order. It is the bookkeeping
// behind every Scheduler implementation in this module.
type Queue struct {
	last    ID
	pending []request
	running []request
}

func (q *Queue) Push(fn func()) ID {
	q.last++
	q.pending = append(q.pending, request{id: q.last, fn: fn})
	return q.last
}

// Remove cancels id, including a request whose batch is currently running.
func (q *Queue) Remove(id ID) {
	q.pending = without(q.pending, id)
	q.running = without(q.running, id)
}

func without(rs []request, id ID) []request {
	for i, r := range rs {
		if r.id == id {
			return append(rs[:i:i], rs[i+1:]...)
		}
	}
	return rs
}

func (q *Queue) Len() int {
	return len(q.pending)
}

// Run executes every callback pending at call time and returns how many ran.
// Callbacks queued while running wait for the next Run.
func (q *Queue) Run() int {
	q.running, q.pending = q.pending, nil
	n := 0
	for len(q.running) > 0 {
		r := q.running[0]
		q.running = q.running[1:]
		r.fn()
		n++
	}
	return n
}

// Manual is a Scheduler that only advances when Step is called.
type Manual struct {
	Queue
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) RequestFrame(fn func()) ID {
	return m.Push(fn)
}

func (m *Manual) CancelFrame(id ID) {
	m.Remove(id)
}

// Pending reports the number of outstanding requests.
func (m *Manual) Pending() int {
	return m.Len()
}

// Step runs one frame.
func (m *Manual) Step() int {
	return m.Run()
}
