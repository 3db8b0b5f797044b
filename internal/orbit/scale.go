package orbit

const (
	DefaultScaleThreshold = 1.5
	DefaultInnerScale     = 15.0
	DefaultOuterScale     = 20.0
)

// ScalePolicy converts abstract radius units to canvas units. Bodies at or
// inside Threshold use Inner, everything further out uses Outer.
type ScalePolicy struct {
	Threshold float64
	Inner     float64
	Outer     float64
}

func DefaultScalePolicy() ScalePolicy {
	return ScalePolicy{
		Threshold: DefaultScaleThreshold,
		Inner:     DefaultInnerScale,
		Outer:     DefaultOuterScale,
	}
}

// Factor returns the multiplier for baseRadius. The threshold is inclusive.
func (p ScalePolicy) Factor(baseRadius float64) float64 {
	if baseRadius <= p.Threshold {
		return p.Inner
	}
	return p.Outer
}

// Scale returns baseRadius in canvas units.
func (p ScalePolicy) Scale(baseRadius float64) float64 {
	return baseRadius * p.Factor(baseRadius)
}
