package sim

import "github.com/san-kum/orbitsim/internal/orbit"

// Surface receives the positions the driver computes. Init is called once
// per pass before the first frame and leaves every body without a
// position. SetPosition is called once per body per frame, in body order,
// and Present once after the last body of the frame.
type Surface interface {
	Init(bodies []orbit.Body) error
	SetPosition(index int, b orbit.Body, p orbit.Position) error
	Present(f Frame) error
}

type Observer interface {
	OnFrame(f Frame)
}

type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

type BodyPosition struct {
	Name     string
	Position orbit.Position
	Angle    float64
}

// Frame is one discrete step of the animation. Positions follow body
// insertion order.
type Frame struct {
	Index     int
	T         float64
	Positions []BodyPosition
}

type Result struct {
	Frames  int
	LastT   float64
	Metrics map[string]float64
}
