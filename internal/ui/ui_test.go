package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-starfield/internal/state"
	"github.com/litescript/ls-starfield/internal/viewport"
)

var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *state.Manager, *time.Time) {
	t.Helper()
	mgr := state.NewManager(state.Config{Seed: 0})
	now := testStart
	m := New(mgr, Options{
		HomeName: "origin",
		Layout:   viewport.Layout{CellWidth: 4, CellHeight: 2},
		PanSpeed: 0.05,
		Theme:    "pico",
		Now:      func() time.Time { return now },
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 9})
	return m, mgr, &now
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_InitializingUntilSized(t *testing.T) {
	m := New(state.NewManager(state.DefaultConfig()), Options{})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View = %q", got)
	}
	if m.Init() == nil {
		t.Error("Init should start the frame tick")
	}
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newTestModel(t)
	for _, msg := range []tea.KeyMsg{key('q'), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command did not quit", msg)
		}
	}
}

func TestModel_Header(t *testing.T) {
	m, _, _ := newTestModel(t)
	header := strings.SplitN(m.View(), "\n", 2)[0]
	if !strings.Contains(header, "x: 0, y: 0") {
		t.Errorf("header %q missing position", header)
	}
	if !strings.Contains(header, viewport.HelpLabel) {
		t.Errorf("header %q missing help label", header)
	}
}

func TestModel_PanWithHeldKey(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, key('d'))
	m = update(t, m, FrameMsg(testStart))
	m = update(t, m, FrameMsg(testStart.Add(100*time.Millisecond)))

	v := m.field.ViewState()
	if math.Abs(v.OffsetX-5) > 1e-9 || v.OffsetY != 0 {
		t.Errorf("view = %+v, want 5,0", v)
	}
	if !strings.Contains(m.View(), "x: 5, y: 0") {
		t.Error("header should follow the pan")
	}

	// The key expires once no repeat arrives within the hold window
	m = update(t, m, FrameMsg(testStart.Add(time.Second)))
	if got := m.field.ViewState(); got != v {
		t.Errorf("view moved to %+v after key hold expired", got)
	}
}

func TestModel_HoverDiscovers(t *testing.T) {
	m, mgr, _ := newTestModel(t)

	// Star (2,1) is centered at column 10, field row 3, one header line down
	m = update(t, m, tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionMotion})

	if !mgr.Discovered(viewport.Cell{X: 2, Y: 1}) {
		t.Fatal("hovering a star should discover it")
	}
	if !strings.Contains(m.View(), "Star name: 131073, water: 53%, planets: 1") {
		t.Error("footer missing hover readout")
	}

	events := mgr.RecentEvents(10)
	if len(events) != 1 || events[0].Type != state.EventDiscovered || events[0].Name != 131073 {
		t.Errorf("events = %+v", events)
	}

	// Hovering again does not log a second discovery
	m = update(t, m, FrameMsg(testStart))
	if n := len(mgr.RecentEvents(10)); n != 1 {
		t.Errorf("events = %d, want 1", n)
	}

	// Moving onto the header clears the hover
	m = update(t, m, tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionMotion})
	if mgr.Snapshot().Hover != nil {
		t.Error("hover should clear off the field")
	}
	if strings.Contains(m.View(), "Star name:") {
		t.Error("readout should clear off the field")
	}
}

func TestModel_MarksDiscoveredStars(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionMotion})
	if strings.ContainsRune(m.View(), glyphDiscovered) {
		t.Error("hovered star should be ringed, not marked")
	}

	// Moving to empty cell (0,0) leaves the found star marked
	m = update(t, m, tea.MouseMsg{X: 0, Y: 1, Action: tea.MouseActionMotion})
	if !strings.ContainsRune(m.View(), glyphDiscovered) {
		t.Error("discovered star should be marked")
	}
}

func TestModel_ResizeClearsHover(t *testing.T) {
	m, mgr, _ := newTestModel(t)

	m = update(t, m, tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionMotion})
	if _, _, ok := m.field.HoveredStar(); !ok {
		t.Fatal("expected a hovered cell")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 12})
	if _, _, ok := m.field.HoveredStar(); ok {
		t.Error("resize should clear the pointer")
	}
	if mgr.Snapshot().Hover != nil {
		t.Error("resize should clear the session hover")
	}
	if strings.Contains(m.View(), "Star name:") {
		t.Error("readout should clear on resize")
	}

	// Toggling the log changes the field height, which also clears it
	m = update(t, m, tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionMotion})
	m = update(t, m, key('e'))
	if _, _, ok := m.field.HoveredStar(); ok {
		t.Error("toggling the log should clear the pointer")
	}
}

func TestModel_ReturnHome(t *testing.T) {
	m, mgr, _ := newTestModel(t)

	m = update(t, m, key('s'))
	m = update(t, m, FrameMsg(testStart))
	m = update(t, m, FrameMsg(testStart.Add(100*time.Millisecond)))
	if m.field.ViewState().OffsetY == 0 {
		t.Fatal("expected the view to move down")
	}

	m = update(t, m, key('0'))
	if !m.field.Animating() {
		t.Fatal("0 should start the return animation")
	}
	m = update(t, m, FrameMsg(testStart.Add(100*time.Millisecond+animDuration)))
	if v := m.field.ViewState(); v != viewport.At(0, 0) {
		t.Errorf("view = %+v, want origin", v)
	}

	events := mgr.RecentEvents(1)
	if len(events) != 1 || events[0].Type != state.EventReturned || events[0].Detail != "origin" {
		t.Errorf("events = %+v", events)
	}
}

func TestModel_CycleTheme(t *testing.T) {
	m, mgr, _ := newTestModel(t)

	m = update(t, m, key('t'))
	if m.theme.Name != "mono" {
		t.Errorf("theme = %q, want mono", m.theme.Name)
	}
	if m.field.theme.Name != "mono" {
		t.Error("field theme not updated")
	}
	events := mgr.RecentEvents(1)
	if len(events) != 1 || events[0].Type != state.EventTheme || events[0].Detail != "mono" {
		t.Errorf("events = %+v", events)
	}
}

func TestModel_Overlays(t *testing.T) {
	m, _, _ := newTestModel(t)
	full := m.fieldHeight()

	m = update(t, m, key('e'))
	if got := m.fieldHeight(); got != max(full-eventLogLines-1, 0) {
		t.Errorf("field height with log = %d", got)
	}

	m = update(t, m, key('?'))
	if !strings.Contains(m.View(), "Controls") {
		t.Error("help overlay not shown")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp || m.showEvents {
		t.Error("esc should close overlays")
	}
	if got := m.fieldHeight(); got != full {
		t.Errorf("field height = %d, want %d", got, full)
	}
}

func TestHeaderLine(t *testing.T) {
	tests := []struct {
		left, right string
		width       int
		want        string
	}{
		{"ab", "cd", 6, "ab  cd"},
		{"ab", "cd", 5, "ab cd"},
		{"ab", "cd", 4, "ab"},
		{"ab", "cd", 0, "ab"},
	}
	for _, tt := range tests {
		if got := headerLine(tt.left, tt.right, tt.width); got != tt.want {
			t.Errorf("headerLine(%q, %q, %d) = %q, want %q", tt.left, tt.right, tt.width, got, tt.want)
		}
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0, 0, 10, 1); got != "#3B82F6" {
		t.Errorf("start = %s, want #3B82F6", got)
	}
	if got := gradientColor(0, 1, 10, 2); got != "#2C61B8" {
		t.Errorf("dimmed start = %s, want #2C61B8", got)
	}
}
