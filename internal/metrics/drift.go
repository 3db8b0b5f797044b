package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

// RadiusDriftName is the key RadiusDrift reports under.
const RadiusDriftName = "radius_drift"

// RadiusDrift tracks the largest distance between a rendered position and
// its body's orbit circle. A correct model keeps it at rounding level.
type RadiusDrift struct {
	name    string
	radii   []float64
	max     float64
	samples int
}

func NewRadiusDrift(bodies []orbit.Body) *RadiusDrift {
	radii := make([]float64, len(bodies))
	for i, b := range bodies {
		radii[i] = b.ScaledRadius()
	}
	return &RadiusDrift{
		name:  RadiusDriftName,
		radii: radii,
	}
}

func (d *RadiusDrift) Name() string {
	return d.name
}

func (d *RadiusDrift) OnFrame(f sim.Frame) {
	d.samples++
	for i, bp := range f.Positions {
		if i >= len(d.radii) {
			break
		}
		if dev := math.Abs(r2.Norm(bp.Position) - d.radii[i]); dev > d.max {
			d.max = dev
		}
	}
}

func (d *RadiusDrift) Value() float64 {
	return d.max
}

func (d *RadiusDrift) Reset() {
	d.max = 0
	d.samples = 0
}
