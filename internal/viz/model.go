package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 30
	panelWidth      = 40
	historyCapacity = 365
)

type TickMsg time.Time

// Options configures the live view.
type Options struct {
	Style    Style
	Interval time.Duration
	Repeat   bool
	Theme    Theme
}

func OptionsFromConfig(cfg *config.SimulationConfig) Options {
	theme := GetTheme(cfg.Theme)
	return Options{
		Style:    StyleFromConfig(cfg, canvasWidth*2, canvasHeight*4),
		Interval: cfg.Interval(),
		Repeat:   cfg.Repeat,
		Theme:    theme,
	}
}

// Model is the Bubble Tea host. It owns a driver feeding a Scene and steps
// it once per tick.
type Model struct {
	driver   *sim.Driver
	scene    *Scene
	opts     Options
	canvas   *Canvas
	err      error
	quitting bool
}

// NewModel creates the scene and its driver and starts the first pass.
func NewModel(state *sim.RenderState, opts Options) (*Model, error) {
	vp := &opts.Style.Viewport
	if vp.W <= 0 || vp.H <= 0 {
		vp.W, vp.H = canvasWidth*2, canvasHeight*4
	}
	m := &Model{
		scene:  NewScene(historyCapacity),
		opts:   opts,
		canvas: NewCanvas((vp.W+1)/2, (vp.H+3)/4),
	}
	m.driver = sim.New(state, m.scene)
	m.driver.AddMetric(metrics.NewRadiusDrift(state.Bodies))
	if err := m.driver.Start(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) Driver() *sim.Driver { return m.driver }
func (m *Model) Scene() *Scene       { return m.scene }

// Err returns the error that stopped the animation, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update advances one frame per tick. After the last frame it restarts
// the pass when Repeat is set and quits otherwise.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case TickMsg:
		if m.driver.Done() {
			if !m.opts.Repeat {
				m.quitting = true
				return m, tea.Quit
			}
			if err := m.driver.Start(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		if _, err := m.driver.Step(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

// View renders the canvas and the side panel.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.scene.Draw(m.canvas, m.opts.Style)

	theme := m.opts.Theme
	header := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	label := lipgloss.NewStyle().Foreground(theme.Muted).Width(10)
	value := lipgloss.NewStyle().Foreground(theme.Text)

	var s strings.Builder
	s.WriteString(header.Render(GradientText("ORBITS", theme.Primary, theme.Accent)) + "\n")

	status := "RUNNING"
	switch {
	case m.err != nil:
		status = "FAILED"
	case m.driver.Done():
		status = "DONE"
	}
	frame := m.scene.Frame
	shown := 0
	if len(m.scene.Placed) > 0 && m.scene.Placed[0] {
		shown = frame.Index + 1
	}
	s.WriteString(value.Render(status) + "\n\n")
	s.WriteString(label.Render("Frame") + value.Render(fmt.Sprintf("%d/%d", shown, len(m.driver.State().Times))) + "\n")
	s.WriteString(label.Render("Day") + value.Render(fmt.Sprintf("%.0f", frame.T)) + "\n")
	s.WriteString(label.Render("Pass") + value.Render(fmt.Sprintf("%d", m.scene.Passes)) + "\n")
	s.WriteString(label.Render("Drift") + value.Render(fmt.Sprintf("%.2g", m.driver.Metrics()[metrics.RadiusDriftName])) + "\n\n")
	if m.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(panelWidth-6).Render(m.err.Error()) + "\n\n")
	}

	s.WriteString(Separator(panelWidth-6, theme.Muted) + "\n")
	s.WriteString(m.legend())

	if len(m.scene.History) > 1 {
		chart := asciigraph.Plot(m.scene.History,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-14),
			asciigraph.Caption(m.scene.Bodies[0].Name+" x"),
		)
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Secondary).Render(chart) + "\n")
	}
	s.WriteString(lipgloss.NewStyle().Foreground(theme.Muted).MarginTop(1).Render("Q:Quit"))

	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(m.canvas.Render())
	panel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.Muted).
		Padding(1, 2).
		Width(panelWidth).
		Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)
}

// legend lists the central body and every orbiting body with its colour.
func (m *Model) legend() string {
	var s strings.Builder
	central := m.opts.Style.Central
	s.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(central.Color)).Render("●") + " " + central.Name + "\n")
	for _, b := range m.scene.Bodies {
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render("●")
		s.WriteString(marker + " " + b.Name + "\n")
	}
	return s.String()
}
