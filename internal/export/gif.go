package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/viz"
)

// DefaultGIFSize is smaller than DefaultImageSize since every frame is
// kept in memory until Flush.
const DefaultGIFSize = 400

// palette slots
const (
	idxBackground = iota
	idxOrbit
	idxCentral
	idxFirstBody
)

// GIFSurface rasterises every presented frame and writes them as an
// animated GIF.
type GIFSurface struct {
	w       io.Writer
	size    int
	delay   int
	loop    int
	style   viz.Style
	palette color.Palette

	bodies    []orbit.Body
	positions []orbit.Position
	frames    []*image.Paletted
	bg        *image.Paletted
}

func NewGIFSurface(w io.Writer, cfg *config.SimulationConfig) *GIFSurface {
	loop := -1
	if cfg.Repeat {
		loop = 0
	}
	// GIF delays are in hundredths of a second.
	delay := cfg.IntervalMs / 10
	if delay < 1 {
		delay = 1
	}
	return &GIFSurface{
		w:     w,
		size:  DefaultGIFSize,
		delay: delay,
		loop:  loop,
		style: viz.StyleFromConfig(cfg, DefaultGIFSize, DefaultGIFSize),
		palette: color.Palette{
			viz.ParseHex(cfg.Canvas.Background),
			viz.ParseHex(string(viz.GetTheme(cfg.Theme).Orbit)),
			viz.ParseHex(cfg.CentralBody.Color),
		},
	}
}

func (g *GIFSurface) Init(bodies []orbit.Body) error {
	if len(bodies)+idxFirstBody > 256 {
		return fmt.Errorf("export: %d bodies do not fit a GIF palette", len(bodies))
	}
	g.bodies = bodies
	g.positions = make([]orbit.Position, len(bodies))
	g.frames = g.frames[:0]
	g.palette = g.palette[:idxFirstBody]
	for _, b := range bodies {
		g.palette = append(g.palette, viz.ParseHex(b.Color))
	}
	g.bg = g.background()
	return nil
}

func (g *GIFSurface) SetPosition(index int, b orbit.Body, p orbit.Position) error {
	if index < 0 || index >= len(g.positions) {
		return fmt.Errorf("export: body index %d out of range", index)
	}
	g.positions[index] = p
	return nil
}

func (g *GIFSurface) Present(f sim.Frame) error {
	img := image.NewPaletted(g.bg.Rect, g.palette)
	copy(img.Pix, g.bg.Pix)

	vp := g.style.Viewport
	for i, b := range g.bodies {
		x, y := vp.ProjectF(g.positions[i])
		fillDisc(img, x, y, math.Max(b.MarkerSize/4, 1.5), uint8(idxFirstBody+i))
	}
	g.frames = append(g.frames, img)
	return nil
}

// Frames is the number of images captured so far.
func (g *GIFSurface) Frames() int { return len(g.frames) }

// Flush encodes all captured frames.
func (g *GIFSurface) Flush() error {
	if len(g.frames) == 0 {
		return errors.New("export: no frames to encode")
	}
	anim := &gif.GIF{
		Image:     g.frames,
		Delay:     make([]int, len(g.frames)),
		LoopCount: g.loop,
	}
	for i := range anim.Delay {
		anim.Delay[i] = g.delay
	}
	return gif.EncodeAll(g.w, anim)
}

// background draws the parts that do not move.
func (g *GIFSurface) background() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, g.size, g.size), g.palette)
	vp := g.style.Viewport
	cx, cy := vp.ProjectF(orbit.Position{})

	if g.style.ShowOrbits {
		for _, b := range g.bodies {
			drawRing(img, cx, cy, vp.Length(b.ScaledRadius()), idxOrbit)
		}
	}
	fillDisc(img, cx, cy, vp.Length(g.style.Central.Radius), idxCentral)
	return img
}

func fillDisc(img *image.Paletted, cx, cy, r float64, idx uint8) {
	b := img.Bounds()
	for y := int(cy - r); y <= int(cy+r)+1; y++ {
		for x := int(cx - r); x <= int(cx+r)+1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r && image.Pt(x, y).In(b) {
				img.SetColorIndex(x, y, idx)
			}
		}
	}
}

// drawRing plots a dotted circle.
func drawRing(img *image.Paletted, cx, cy, r float64, idx uint8) {
	if r <= 0 {
		return
	}
	steps := int(2 * math.Pi * r / 3)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := int(cx+r*math.Cos(a)), int(cy+r*math.Sin(a))
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetColorIndex(x, y, idx)
		}
	}
}
