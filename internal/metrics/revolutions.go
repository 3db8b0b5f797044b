package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/sim"
)

// Revolutions counts the full turns one body has completed, read from the
// frame angle.
type Revolutions struct {
	name  string
	body  string
	angle float64
}

func NewRevolutions(body string) *Revolutions {
	return &Revolutions{
		name: "revolutions:" + body,
		body: body,
	}
}

func (r *Revolutions) Name() string {
	return r.name
}

func (r *Revolutions) OnFrame(f sim.Frame) {
	for _, bp := range f.Positions {
		if bp.Name == r.body {
			r.angle = bp.Angle
			return
		}
	}
}

func (r *Revolutions) Value() float64 {
	return math.Floor(r.angle / (2 * math.Pi))
}

func (r *Revolutions) Reset() {
	r.angle = 0
}

// ForBodies returns one Revolutions metric per name.
func ForBodies(names []string) []*Revolutions {
	out := make([]*Revolutions, len(names))
	for i, name := range names {
		out[i] = NewRevolutions(name)
	}
	return out
}
