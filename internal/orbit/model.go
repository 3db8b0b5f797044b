package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultSlowdown stretches every period so the animation is watchable.
const DefaultSlowdown = 90.0

// Model maps (body, t) to a position on the body's orbit circle.
type Model struct {
	Slowdown float64
}

func NewModel(slowdown float64) *Model {
	return &Model{Slowdown: slowdown}
}

// EffectivePeriod is the body's period in frames.
func (m *Model) EffectivePeriod(b Body) float64 {
	return b.Period * m.Slowdown
}

// AngleAt returns the orbit angle in radians at time t. It is not reduced
// modulo 2π.
func (m *Model) AngleAt(b Body, t float64) (float64, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, ErrInvalidTime
	}
	period := m.EffectivePeriod(b)
	if period == 0 || math.IsNaN(period) {
		return 0, &ConfigurationError{Body: b.Name, Field: "period", Wrapped: ErrDivisionByZero}
	}
	return 2 * math.Pi * (t / period), nil
}

// AngularStep is the angle swept per unit of t.
func (m *Model) AngularStep(b Body) (float64, error) {
	return m.AngleAt(b, 1)
}

// PositionAt returns the body's position at time t.
func (m *Model) PositionAt(b Body, t float64) (Position, error) {
	angle, err := m.AngleAt(b, t)
	if err != nil {
		return Position{}, err
	}
	sin, cos := math.Sincos(angle)
	return r2.Scale(b.scaledRadius, r2.Vec{X: cos, Y: sin}), nil
}
