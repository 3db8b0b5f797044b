package export

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/viz"
)

// DefaultImageSize is the side of the square SVG and GIF images in pixels.
const DefaultImageSize = 864

var errNoFrame = errors.New("export: requested frame was never presented")

// SVGSurface captures one frame of a run and writes it as an SVG image.
// By default the last presented frame is kept.
type SVGSurface struct {
	w          io.Writer
	size       int
	background string
	style      viz.Style

	target    int
	bodies    []orbit.Body
	positions []orbit.Position
	kept      []orbit.Position
	keptFrame sim.Frame
	captured  bool
}

func NewSVGSurface(w io.Writer, cfg *config.SimulationConfig) *SVGSurface {
	return &SVGSurface{
		w:          w,
		size:       DefaultImageSize,
		background: cfg.Canvas.Background,
		style:      viz.StyleFromConfig(cfg, DefaultImageSize, DefaultImageSize),
		target:     -1,
	}
}

// SetFrame selects the frame to keep. A negative index keeps the last one.
func (s *SVGSurface) SetFrame(index int) { s.target = index }

func (s *SVGSurface) Init(bodies []orbit.Body) error {
	s.bodies = bodies
	s.positions = make([]orbit.Position, len(bodies))
	s.kept = make([]orbit.Position, len(bodies))
	s.captured = false
	return nil
}

func (s *SVGSurface) SetPosition(index int, b orbit.Body, p orbit.Position) error {
	if index < 0 || index >= len(s.positions) {
		return fmt.Errorf("export: body index %d out of range", index)
	}
	s.positions[index] = p
	return nil
}

func (s *SVGSurface) Present(f sim.Frame) error {
	if s.target >= 0 && f.Index != s.target {
		return nil
	}
	copy(s.kept, s.positions)
	s.keptFrame = f
	s.captured = true
	return nil
}

// Flush writes the kept frame.
func (s *SVGSurface) Flush() error {
	if !s.captured {
		return fmt.Errorf("%w: %d", errNoFrame, s.target)
	}
	_, err := io.WriteString(s.w, s.render())
	return err
}

func (s *SVGSurface) render() string {
	vp := s.style.Viewport
	size := float64(s.size)
	cx, cy := vp.ProjectF(orbit.Position{})

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, size, size, size, size, s.background))

	if s.style.ShowOrbits {
		sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-dasharray="4 4">
`, s.style.OrbitColor))
		for _, b := range s.bodies {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, vp.Length(b.ScaledRadius())))
		}
		sb.WriteString("</g>\n")
	}

	central := s.style.Central
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, vp.Length(central.Radius), central.Color))

	for i, b := range s.bodies {
		x, y := vp.ProjectF(s.kept[i])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>
`, x, y, b.MarkerSize/2, b.Color, html.EscapeString(b.Name)))
	}

	// Legend, top left.
	sb.WriteString(`<g font-family="sans-serif" font-size="14" fill="#ffffff">
`)
	entries := append([][2]string{{central.Name, central.Color}}, legendEntries(s.bodies)...)
	for i, e := range entries {
		y := 24 + float64(i)*20
		sb.WriteString(fmt.Sprintf(`<circle cx="20" cy="%.0f" r="5" fill="%s"/><text x="32" y="%.0f">%s</text>
`, y-5, e[1], y, html.EscapeString(e[0])))
	}
	sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%.0f" text-anchor="end">day %.1f</text>
`, size-16, size-16, s.keptFrame.T))
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func legendEntries(bodies []orbit.Body) [][2]string {
	out := make([][2]string, len(bodies))
	for i, b := range bodies {
		out[i] = [2]string{b.Name, b.Color}
	}
	return out
}
