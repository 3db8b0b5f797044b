package sim

import (
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/orbit"
)

// RenderState is owned by the driver. Bodies and the name index are fixed
// at Initialize; Current is overwritten on every frame.
type RenderState struct {
	Bodies  []orbit.Body
	Model   *orbit.Model
	Times   []float64
	Current []orbit.Position
	Placed  []bool

	index map[string]int
}

// Initialize builds the render state for cfg. Every body starts with no
// position.
func Initialize(cfg *config.SimulationConfig) (*RenderState, error) {
	bodies, err := cfg.BuildBodies()
	if err != nil {
		return nil, err
	}
	return NewRenderState(bodies, orbit.NewModel(cfg.Slowdown), cfg.Frames)
}

// NewRenderState is Initialize for callers that already hold bodies. Names
// must be unique.
func NewRenderState(bodies []orbit.Body, model *orbit.Model, frames int) (*RenderState, error) {
	if len(bodies) == 0 {
		return nil, &orbit.ConfigurationError{Field: "bodies", Wrapped: orbit.ErrNoBodies}
	}
	if frames <= 0 {
		return nil, &orbit.ConfigurationError{Field: "frames", Wrapped: orbit.ErrConfiguration}
	}

	index := make(map[string]int, len(bodies))
	for i, b := range bodies {
		if _, dup := index[b.Name]; dup {
			return nil, &orbit.ConfigurationError{Body: b.Name, Field: "name", Wrapped: orbit.ErrDuplicateName}
		}
		index[b.Name] = i
	}

	times := make([]float64, frames)
	for i := range times {
		times[i] = float64(i)
	}

	return &RenderState{
		Bodies:  bodies,
		Model:   model,
		Times:   times,
		Current: make([]orbit.Position, len(bodies)),
		Placed:  make([]bool, len(bodies)),
		index:   index,
	}, nil
}

func (s *RenderState) Lookup(name string) (orbit.Body, int, bool) {
	i, ok := s.index[name]
	if !ok {
		return orbit.Body{}, -1, false
	}
	return s.Bodies[i], i, true
}

// PositionOf returns the current rendered position of name. The second
// result is false before the body's first frame.
func (s *RenderState) PositionOf(name string) (orbit.Position, bool) {
	i, ok := s.index[name]
	if !ok || !s.Placed[i] {
		return orbit.Position{}, false
	}
	return s.Current[i], true
}

func (s *RenderState) clear() {
	for i := range s.Current {
		s.Current[i] = orbit.Position{}
		s.Placed[i] = false
	}
}

func (s *RenderState) apply(f Frame) {
	for i, bp := range f.Positions {
		s.Current[i] = bp.Position
		s.Placed[i] = true
	}
}

// Tick computes every body's position at t without touching state. On
// error no frame is returned.
func Tick(state *RenderState, t float64) (Frame, error) {
	positions := make([]BodyPosition, len(state.Bodies))
	for i, b := range state.Bodies {
		angle, err := state.Model.AngleAt(b, t)
		if err != nil {
			return Frame{}, err
		}
		p, err := state.Model.PositionAt(b, t)
		if err != nil {
			return Frame{}, err
		}
		positions[i] = BodyPosition{Name: b.Name, Position: p, Angle: angle}
	}
	return Frame{T: t, Positions: positions}, nil
}
