package orbit

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-9

func solarBodies(t *testing.T) []Body {
	t.Helper()
	data := []struct {
		name           string
		radius, period float64
	}{
		{"Mercury", 0.4, 0.241},
		{"Venus", 0.7, 0.615},
		{"Earth", 1, 1.000},
		{"Mars", 1.3, 1.881},
		{"Jupiter", 1.6, 11.86},
		{"Saturn", 1.8, 29.46},
		{"Uranus", 2.1, 84.02},
		{"Neptune", 2.7, 164.8},
	}
	bodies := make([]Body, 0, len(data))
	for _, d := range data {
		b, err := NewBody(d.name, d.radius, d.period, DefaultScalePolicy())
		if err != nil {
			t.Fatalf("NewBody(%s): %v", d.name, err)
		}
		bodies = append(bodies, b)
	}
	return bodies
}

func TestPositionAt_OnCircle(t *testing.T) {
	m := NewModel(DefaultSlowdown)

	for _, b := range solarBodies(t) {
		for _, tm := range []float64{0, 1, 7.5, 42, 364, 1000, -12} {
			p, err := m.PositionAt(b, tm)
			if err != nil {
				t.Fatalf("%s at t=%v: %v", b.Name, tm, err)
			}
			r := b.ScaledRadius()
			if math.Abs(r2.Norm2(p)-r*r) > 1e-6 {
				t.Errorf("%s at t=%v: |p|^2 = %v, want %v", b.Name, tm, r2.Norm2(p), r*r)
			}
		}
	}
}

func TestPositionAt_Periodic(t *testing.T) {
	m := NewModel(DefaultSlowdown)

	for _, b := range solarBodies(t) {
		period := m.EffectivePeriod(b)
		for _, tm := range []float64{0, 3, 100} {
			p0, _ := m.PositionAt(b, tm)
			p1, _ := m.PositionAt(b, tm+period)
			if r2.Norm(r2.Sub(p0, p1)) > 1e-6 {
				t.Errorf("%s: position at t=%v and t+T differ: %v vs %v", b.Name, tm, p0, p1)
			}
		}
	}
}

func TestAngleAt_ConstantStep(t *testing.T) {
	m := NewModel(DefaultSlowdown)

	for _, b := range solarBodies(t) {
		step, err := m.AngularStep(b)
		if err != nil {
			t.Fatal(err)
		}
		expected := 2 * math.Pi / (b.Period * DefaultSlowdown)
		if math.Abs(step-expected) > tol {
			t.Errorf("%s: step = %v, want %v", b.Name, step, expected)
		}

		prev, _ := m.AngleAt(b, 0)
		for i := 1; i <= 10; i++ {
			a, _ := m.AngleAt(b, float64(i))
			if a <= prev {
				t.Fatalf("%s: angle not increasing at t=%d", b.Name, i)
			}
			if math.Abs((a-prev)-expected) > tol {
				t.Errorf("%s: step at t=%d = %v, want %v", b.Name, i, a-prev, expected)
			}
			prev = a
		}
	}
}

func TestPositionAt_Deterministic(t *testing.T) {
	m := NewModel(DefaultSlowdown)
	b := solarBodies(t)[3]

	p1, _ := m.PositionAt(b, 10)
	p2, _ := m.PositionAt(b, 10)
	if math.Float64bits(p1.X) != math.Float64bits(p2.X) || math.Float64bits(p1.Y) != math.Float64bits(p2.Y) {
		t.Errorf("positions differ: %v vs %v", p1, p2)
	}
}

func TestPositionAt_EarthQuarterRevolution(t *testing.T) {
	m := NewModel(90)
	earth, err := NewBody("Earth", 1, 1.0, DefaultScalePolicy())
	if err != nil {
		t.Fatal(err)
	}

	if got := m.EffectivePeriod(earth); got != 90 {
		t.Errorf("EffectivePeriod = %v, want 90", got)
	}

	p, _ := m.PositionAt(earth, 0)
	if p.X != 15.0 || p.Y != 0.0 {
		t.Errorf("t=0: got %v, want (15, 0)", p)
	}

	p, _ = m.PositionAt(earth, 22.5)
	if math.Abs(p.X) > tol || math.Abs(p.Y-15.0) > tol {
		t.Errorf("t=22.5: got %v, want (0, 15)", p)
	}
}

func TestPositionAt_DivisionByZero(t *testing.T) {
	m := NewModel(DefaultSlowdown)
	// Bypasses NewBody validation on purpose.
	b := Body{Name: "Ghost", BaseRadius: 1, Period: 0, scaledRadius: 15}

	p, err := m.PositionAt(b, 0)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected DivisionByZero to be a configuration error")
	}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		t.Errorf("returned NaN position: %v", p)
	}

	zero := NewModel(0)
	earth, _ := NewBody("Earth", 1, 1, DefaultScalePolicy())
	if _, err := zero.PositionAt(earth, 1); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("zero slowdown: expected ErrDivisionByZero, got %v", err)
	}
}

func TestPositionAt_InvalidTime(t *testing.T) {
	m := NewModel(DefaultSlowdown)
	earth, _ := NewBody("Earth", 1, 1, DefaultScalePolicy())

	for _, tm := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := m.PositionAt(earth, tm); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("t=%v: expected ErrInvalidTime, got %v", tm, err)
		}
	}
}
