package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultMarkerSize is shared by every body.
const DefaultMarkerSize = 12.0

// Position is a point on the canvas plane, centred on the central body.
type Position = r2.Vec

// Body is one orbiting entity. The scaled radius is computed once by
// NewBody and cannot change afterwards.
type Body struct {
	Name       string
	BaseRadius float64
	Period     float64
	MarkerSize float64
	Color      string

	scaledRadius float64
}

// NewBody validates the period and applies the scale policy.
func NewBody(name string, baseRadius, period float64, policy ScalePolicy) (Body, error) {
	if name == "" {
		return Body{}, &ConfigurationError{Field: "name", Wrapped: ErrConfiguration}
	}
	if !(period > 0) || math.IsInf(period, 0) {
		return Body{}, &ConfigurationError{Body: name, Field: "period", Wrapped: ErrInvalidPeriod}
	}
	if baseRadius < 0 || math.IsNaN(baseRadius) || math.IsInf(baseRadius, 0) {
		return Body{}, &ConfigurationError{Body: name, Field: "radius", Wrapped: ErrConfiguration}
	}
	return Body{
		Name:         name,
		BaseRadius:   baseRadius,
		Period:       period,
		MarkerSize:   DefaultMarkerSize,
		scaledRadius: policy.Scale(baseRadius),
	}, nil
}

// ScaledRadius returns the orbit radius in canvas units.
func (b Body) ScaledRadius() float64 { return b.scaledRadius }

// WithStyle returns a copy of b with the given marker size and colour.
func (b Body) WithStyle(markerSize float64, color string) Body {
	if markerSize > 0 {
		b.MarkerSize = markerSize
	}
	b.Color = color
	return b
}
