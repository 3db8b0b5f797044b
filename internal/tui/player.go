package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/viz"
	"golang.org/x/term"
)

const (
	defaultWidth  = 70
	defaultHeight = 24
	clearScreen   = "\033[2J\033[H"
	hideCursor    = "\033[?25l"
	showCursor    = "\033[?25h"
)

// Player animates a run on a plain terminal without bubbletea. A
// time.Ticker drives the driver one frame per interval. When out is not a
// terminal the run is computed back to back and only the final frame is
// printed, without escape codes.
type Player struct {
	out      io.Writer
	ansi     bool
	interval time.Duration
	repeat   bool
	style    viz.Style
	central  string
	scene    *viz.Scene
	driver   *sim.Driver
	canvas   *viz.Canvas
	logger   *log.Logger
}

func NewPlayer(state *sim.RenderState, cfg *config.SimulationConfig, out io.Writer) *Player {
	ansi := false
	width, height := defaultWidth, defaultHeight
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		ansi = true
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 10 && h > 8 {
			width, height = w-4, h-6
		}
	}

	canvas := viz.NewCanvas(width, height)
	pw, ph := canvas.PixelSize()
	scene := viz.NewScene(0)
	return &Player{
		out:      out,
		ansi:     ansi,
		interval: cfg.Interval(),
		repeat:   cfg.Repeat,
		style:    viz.StyleFromConfig(cfg, pw, ph),
		central:  cfg.CentralBody.Name,
		scene:    scene,
		driver:   sim.New(state, scene),
		canvas:   canvas,
		logger:   log.Default(),
	}
}

// SetANSI overrides terminal detection.
func (p *Player) SetANSI(on bool) { p.ansi = on }

func (p *Player) SetLogger(logger *log.Logger) {
	p.logger = logger
	p.driver.SetLogger(logger)
}

func (p *Player) Driver() *sim.Driver { return p.driver }

// Run plays until the last frame, or forever when repeat is set on a
// terminal. It returns nil when ctx is cancelled.
func (p *Player) Run(ctx context.Context) error {
	if !p.ansi {
		if _, err := p.driver.Run(ctx); err != nil {
			return err
		}
		_, err := io.WriteString(p.out, p.frame())
		return err
	}

	fmt.Fprint(p.out, hideCursor)
	defer fmt.Fprint(p.out, showCursor)

	if err := p.driver.Start(); err != nil {
		return err
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("player cancelled", "frame", p.scene.Frame.Index)
			return nil
		case <-ticker.C:
			if p.driver.Done() {
				if !p.repeat {
					return nil
				}
				if err := p.driver.Start(); err != nil {
					return err
				}
			}
			if _, err := p.driver.Step(); err != nil {
				return err
			}
			fmt.Fprint(p.out, clearScreen+p.frame())
		}
	}
}

func (p *Player) frame() string {
	p.scene.Draw(p.canvas, p.style)
	f := p.scene.Frame
	total := len(p.driver.State().Times)

	var b strings.Builder
	fmt.Fprintf(&b, "  orbits  frame %d/%d  day %.0f  pass %d\n", f.Index+1, total, f.T, p.scene.Passes)
	b.WriteString("  " + strings.Repeat("-", p.canvas.Width) + "\n")
	body := p.canvas.String()
	if p.ansi {
		body = p.canvas.Render()
	}
	for _, row := range strings.SplitAfter(body, "\n") {
		if row != "" {
			b.WriteString("  " + row)
		}
	}
	b.WriteString("  " + strings.Repeat("-", p.canvas.Width) + "\n")

	names := make([]string, 0, len(p.scene.Bodies)+1)
	names = append(names, p.central)
	for _, bd := range p.scene.Bodies {
		names = append(names, bd.Name)
	}
	b.WriteString("  " + strings.Join(names, " ") + "\n")
	return b.String()
}
