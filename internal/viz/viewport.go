package viz

import (
	"math"

	"github.com/san-kum/orbitsim/internal/orbit"
)

// Viewport maps a rectangle of the canvas plane onto a W x H pixel area
// with equal scale on both axes. The plane's y axis points up.
type Viewport struct {
	XMin, XMax, YMin, YMax float64
	W, H                   int
}

// PixelsPerUnit is the common scale, chosen so the whole rectangle fits.
func (v Viewport) PixelsPerUnit() float64 {
	return math.Min(float64(v.W)/(v.XMax-v.XMin), float64(v.H)/(v.YMax-v.YMin))
}

// Project returns the pixel for p. Points outside the rectangle map
// outside [0,W)x[0,H).
func (v Viewport) Project(p orbit.Position) (int, int) {
	x, y := v.ProjectF(p)
	return int(math.Floor(x)), int(math.Floor(y))
}

// ProjectF is Project without rounding.
func (v Viewport) ProjectF(p orbit.Position) (float64, float64) {
	s := v.PixelsPerUnit()
	ox := (float64(v.W) - s*(v.XMax-v.XMin)) / 2
	oy := (float64(v.H) - s*(v.YMax-v.YMin)) / 2
	return ox + (p.X-v.XMin)*s, oy + (v.YMax-p.Y)*s
}

// Length converts a distance on the plane to pixels.
func (v Viewport) Length(d float64) float64 {
	return d * v.PixelsPerUnit()
}
