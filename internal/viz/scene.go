package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
)

// Style is what a Scene needs to paint itself.
type Style struct {
	Viewport   Viewport
	Central    config.CentralConfig
	ShowOrbits bool
	OrbitColor lipgloss.Color
}

// StyleFromConfig builds a style for a canvas of w x h sub-pixels.
func StyleFromConfig(cfg *config.SimulationConfig, w, h int) Style {
	return Style{
		Viewport: Viewport{
			XMin: cfg.Canvas.XMin, XMax: cfg.Canvas.XMax,
			YMin: cfg.Canvas.YMin, YMax: cfg.Canvas.YMax,
			W: w, H: h,
		},
		Central:    cfg.CentralBody,
		ShowOrbits: cfg.ShowOrbits,
		OrbitColor: GetTheme(cfg.Theme).Orbit,
	}
}

// Scene is a sim.Surface that keeps the latest rendered position of every
// body. It does no drawing until Draw is called.
type Scene struct {
	Bodies    []orbit.Body
	Positions []orbit.Position
	Placed    []bool
	Frame     sim.Frame
	History   []float64
	Passes    int

	historyCap int
}

// NewScene keeps up to historyCap x-coordinates of the first body.
func NewScene(historyCap int) *Scene {
	return &Scene{
		History:    make([]float64, 0, historyCap),
		historyCap: historyCap,
	}
}

func (s *Scene) Init(bodies []orbit.Body) error {
	s.Bodies = bodies
	s.Positions = make([]orbit.Position, len(bodies))
	s.Placed = make([]bool, len(bodies))
	s.History = s.History[:0]
	s.Frame = sim.Frame{}
	s.Passes++
	return nil
}

func (s *Scene) SetPosition(index int, b orbit.Body, p orbit.Position) error {
	if index < 0 || index >= len(s.Positions) {
		return fmt.Errorf("viz: body index %d out of range", index)
	}
	s.Positions[index] = p
	s.Placed[index] = true
	return nil
}

func (s *Scene) Present(f sim.Frame) error {
	s.Frame = f
	if len(f.Positions) > 0 && s.historyCap > 0 {
		s.History = append(s.History, f.Positions[0].Position.X)
		if len(s.History) > s.historyCap {
			s.History = s.History[1:]
		}
	}
	return nil
}

// Draw repaints c from the current positions. The viewport should match
// the canvas pixel size.
func (s *Scene) Draw(c *Canvas, style Style) {
	c.Clear()
	vp := style.Viewport
	cx, cy := vp.Project(orbit.Position{})

	if style.ShowOrbits {
		for _, b := range s.Bodies {
			r := int(vp.Length(b.ScaledRadius()) + 0.5)
			c.DrawCircle(cx, cy, r, style.OrbitColor, true)
		}
	}

	c.FillCircle(cx, cy, int(vp.Length(style.Central.Radius)+0.5), lipgloss.Color(style.Central.Color))

	for i, b := range s.Bodies {
		if !s.Placed[i] {
			continue
		}
		x, y := vp.Project(s.Positions[i])
		c.FillCircle(x, y, markerPixels(b.MarkerSize), lipgloss.Color(b.Color))
	}
}

// markerPixels maps a marker size in points to a sub-pixel radius.
func markerPixels(size float64) int {
	r := int(size / 12)
	if r < 1 {
		return 1
	}
	return r
}
