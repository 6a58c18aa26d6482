package state

import (
	"time"

	"github.com/google/uuid"
)

// Point is one sampled pointer position. Pressure is captured but not
// used for rendering.
type Point struct {
	X, Y     float64
	Pressure float64
	Time     time.Time
}

// Stroke is the ordered list of points of one pointer-down to pointer-up
// gesture. Points are only appended while the stroke is the engine's
// current stroke; CommittedAt is set when it moves into the collection.
type Stroke struct {
	ID          string
	Points      []Point
	CommittedAt time.Time
}

// NewStroke starts a stroke holding a single point.
func NewStroke(first Point) *Stroke {
	return &Stroke{
		ID:     uuid.NewString(),
		Points: []Point{first},
	}
}

func (s *Stroke) Append(p Point) {
	s.Points = append(s.Points, p)
}

func (s *Stroke) Len() int {
	return len(s.Points)
}

// Last returns the most recent point. The stroke must not be empty.
func (s *Stroke) Last() Point {
	return s.Points[len(s.Points)-1]
}

// Clone returns a deep copy that shares nothing with s.
func (s *Stroke) Clone() Stroke {
	c := *s
	c.Points = make([]Point, len(s.Points))
	copy(c.Points, s.Points)
	return c
}
