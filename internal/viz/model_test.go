package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
)

func newTestModel(t *testing.T, frames int, repeat bool) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Frames = frames
	cfg.Repeat = repeat
	state, err := sim.Initialize(cfg)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewModel(state, OptionsFromConfig(cfg))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_TicksAdvanceFrames(t *testing.T) {
	m := newTestModel(t, 3, false)

	for i := 0; i < 3; i++ {
		_, cmd := m.Update(TickMsg(time.Now()))
		if cmd == nil {
			t.Fatalf("tick %d: expected next tick", i)
		}
		if m.Scene().Frame.Index != i {
			t.Errorf("tick %d: frame index %d", i, m.Scene().Frame.Index)
		}
	}

	_, cmd := m.Update(TickMsg(time.Now()))
	if !isQuit(cmd) {
		t.Error("expected quit after the last frame without repeat")
	}
	if m.Err() != nil {
		t.Errorf("unexpected error: %v", m.Err())
	}
}

func TestModel_Repeat(t *testing.T) {
	m := newTestModel(t, 2, true)

	for i := 0; i < 2; i++ {
		m.Update(TickMsg(time.Now()))
	}
	_, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected the animation to continue")
	}
	if m.Scene().Passes != 2 {
		t.Errorf("expected second pass, got %d", m.Scene().Passes)
	}
	if m.Scene().Frame.Index != 0 {
		t.Errorf("expected frame 0 after restart, got %d", m.Scene().Frame.Index)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, 3, true)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !isQuit(cmd) {
		t.Error("expected quit on q")
	}
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, 5, false)
	m.Update(TickMsg(time.Now()))
	m.Update(TickMsg(time.Now()))

	view := m.View()
	for _, want := range []string{"Mercury", "Neptune", "Sun", "2/5", "Q:Quit"} {
		if !strings.Contains(view, want) && !strings.Contains(view, strings.ToUpper(want)) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_DriftMetric(t *testing.T) {
	m := newTestModel(t, 5, false)
	for i := 0; i < 5; i++ {
		m.Update(TickMsg(time.Now()))
	}

	drift, ok := m.Driver().Metrics()[metrics.RadiusDriftName]
	if !ok {
		t.Fatal("live driver has no radius drift metric")
	}
	if drift > 1e-9 {
		t.Errorf("drift = %v, want ~0", drift)
	}
	if !strings.Contains(m.View(), "Drift") {
		t.Error("view missing drift row")
	}
}

func TestModel_ShowsFrameError(t *testing.T) {
	earth, _ := orbit.NewBody("Earth", 1, 1, orbit.DefaultScalePolicy())
	ghost := orbit.Body{Name: "Ghost", BaseRadius: 1}
	state, err := sim.NewRenderState([]orbit.Body{earth, ghost}, orbit.NewModel(90), 5)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewModel(state, OptionsFromConfig(config.DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}

	_, cmd := m.Update(TickMsg(time.Now()))
	if !isQuit(cmd) {
		t.Error("expected quit after a failed frame")
	}
	if m.Err() == nil {
		t.Fatal("expected the frame error to be kept")
	}

	view := m.View()
	if !strings.Contains(view, "FAILED") || !strings.Contains(view, "division") {
		t.Errorf("view does not report the failure:\n%s", view)
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(Themes) {
		t.Fatalf("expected %d names, got %d", len(Themes), len(names))
	}
	for _, name := range names {
		if GetTheme(name).Name != name {
			t.Errorf("GetTheme(%q) fell back to %q", name, GetTheme(name).Name)
		}
	}
	if GetTheme("nope").Name != ThemeSpace.Name {
		t.Error("unknown theme should fall back to space")
	}
}
