package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/orbit"
)

func TestInitialize(t *testing.T) {
	state, err := Initialize(config.DefaultConfig())
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	if len(state.Bodies) != 8 {
		t.Errorf("expected 8 bodies, got %d", len(state.Bodies))
	}
	if len(state.Times) != 365 || state.Times[0] != 0 || state.Times[364] != 364 {
		t.Errorf("unexpected frame schedule: len=%d", len(state.Times))
	}

	for _, b := range state.Bodies {
		if _, ok := state.PositionOf(b.Name); ok {
			t.Errorf("%s has a position before the first frame", b.Name)
		}
	}

	b, i, ok := state.Lookup("Jupiter")
	if !ok || i != 4 || b.ScaledRadius() != 32 {
		t.Errorf("Lookup(Jupiter) = %v, %d, %v", b, i, ok)
	}
	if _, _, ok := state.Lookup("Pluto"); ok {
		t.Error("Lookup found a body that does not exist")
	}
}

func TestInitialize_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bodies[3].Period = 0

	if _, err := Initialize(cfg); !errors.Is(err, orbit.ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestNewRenderState_Invalid(t *testing.T) {
	earth, _ := orbit.NewBody("Earth", 1, 1, orbit.DefaultScalePolicy())
	model := orbit.NewModel(90)

	if _, err := NewRenderState(nil, model, 10); !errors.Is(err, orbit.ErrNoBodies) {
		t.Errorf("expected ErrNoBodies, got %v", err)
	}
	if _, err := NewRenderState([]orbit.Body{earth, earth}, model, 10); !errors.Is(err, orbit.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := NewRenderState([]orbit.Body{earth}, model, 0); !errors.Is(err, orbit.ErrConfiguration) {
		t.Errorf("expected configuration error for zero frames, got %v", err)
	}
}

func TestTick(t *testing.T) {
	state, err := Initialize(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	f, err := Tick(state, 22.5)
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if len(f.Positions) != len(state.Bodies) {
		t.Fatalf("expected %d positions, got %d", len(state.Bodies), len(f.Positions))
	}
	for i, bp := range f.Positions {
		if bp.Name != state.Bodies[i].Name {
			t.Errorf("position %d is %s, want %s", i, bp.Name, state.Bodies[i].Name)
		}
	}

	earth := f.Positions[2]
	if math.Abs(earth.Position.X) > 1e-9 || math.Abs(earth.Position.Y-15) > 1e-9 {
		t.Errorf("Earth at t=22.5 = %v, want (0, 15)", earth.Position)
	}
	if math.Abs(earth.Angle-math.Pi/2) > 1e-12 {
		t.Errorf("Earth angle = %v, want π/2", earth.Angle)
	}

	if _, ok := state.PositionOf("Earth"); ok {
		t.Error("Tick mutated the render state")
	}
}

func TestTick_DivisionByZero(t *testing.T) {
	earth, _ := orbit.NewBody("Earth", 1, 1, orbit.DefaultScalePolicy())
	ghost := orbit.Body{Name: "Ghost", BaseRadius: 1}

	state, err := NewRenderState([]orbit.Body{earth, ghost}, orbit.NewModel(90), 5)
	if err != nil {
		t.Fatal(err)
	}

	f, err := Tick(state, 0)
	if !errors.Is(err, orbit.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if len(f.Positions) != 0 {
		t.Errorf("expected no partial frame, got %d positions", len(f.Positions))
	}
}
