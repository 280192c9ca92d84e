// Package ui provides the terminal starfield explorer using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/state"
	"github.com/litescript/ls-starfield/internal/viewport"
)

const (
	headerLines = 1
	footerLines = 2

	defaultFrameInterval = time.Second / 30
	title                = "ls-starfield"
)

// Msg types for Bubble Tea
type (
	// FrameMsg advances the explorer by one frame.
	FrameMsg time.Time
)

// Options configures the explorer.
type Options struct {
	// Home is the cell the view starts at and returns to on "0".
	Home     viewport.Cell
	HomeName string

	Layout        viewport.Layout
	PanSpeed      float64
	FrameInterval time.Duration
	KeyHold       time.Duration
	Theme         string

	Logger *logging.Logger

	// Now overrides the clock used for key presses.
	Now func() time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state  *state.Manager
	logger *logging.Logger
	now    func() time.Time

	opts  Options
	held  *viewport.HeldKeys
	field FieldViewModel
	theme Theme

	// UI state
	width      int
	height     int
	ready      bool
	showHelp   bool
	showEvents bool
	lastFrame  time.Time

	// Latest data snapshot
	snapshot state.Snapshot
}

// New creates a new root model exploring stateMgr's seed.
func New(stateMgr *state.Manager, opts Options) Model {
	if opts.Layout.CellWidth <= 0 || opts.Layout.CellHeight <= 0 {
		opts.Layout = viewport.Layout{CellWidth: 4, CellHeight: 2}
	}
	if opts.PanSpeed <= 0 {
		opts.PanSpeed = viewport.DefaultPanSpeed
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = defaultFrameInterval
	}
	if opts.HomeName == "" {
		opts.HomeName = "start"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	theme, ok := ThemeByName(opts.Theme)
	if !ok {
		theme = themes[0]
	}

	field := NewFieldViewModel(stateMgr.Seed(), opts.Layout, theme).
		SetView(viewport.At(opts.Home.X, opts.Home.Y)).
		SetDiscovered(stateMgr.Discovered)

	return Model{
		state:    stateMgr,
		logger:   logger,
		now:      now,
		opts:     opts,
		held:     viewport.NewHeldKeys(opts.KeyHold),
		field:    field,
		theme:    theme,
		snapshot: stateMgr.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
			return m, nil
		}
		m.field = m.field.PointerAt(msg.X, msg.Y-headerLines)
		m.recordHover(m.now())
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m = m.resize()
		return m, nil

	case FrameMsg:
		t := time.Time(msg)
		var dt time.Duration
		if !m.lastFrame.IsZero() {
			dt = t.Sub(m.lastFrame)
		}
		m.lastFrame = t

		if m.field.Animating() {
			m.field = m.field.Step(t)
		} else {
			m.field = m.field.Pan(m.held.Active(t), dt, m.opts.PanSpeed)
		}
		m.state.Frame(t, m.field.ViewState(), dt)
		m.recordHover(t)
		m.snapshot = m.state.Snapshot()
		return m, m.frameCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "esc":
		m.showHelp = false
		m.showEvents = false
		m = m.resize()
		return m, nil
	case "e":
		m.showEvents = !m.showEvents
		m = m.resize()
		return m, nil
	case "t":
		m.theme = nextTheme(m.theme.Name)
		m.field = m.field.SetTheme(m.theme)
		m.state.ThemeChanged(m.now(), m.theme.Name)
		m.logger.Debug("theme changed to %s", m.theme.Name)
		return m, nil
	case "0":
		now := m.now()
		m.held.Release()
		m.field = m.field.StartReturn(viewport.At(m.opts.Home.X, m.opts.Home.Y), now)
		m.state.Returned(now, m.opts.Home, m.opts.HomeName)
		m.logger.Debug("returning to %s (%d, %d)", m.opts.HomeName, m.opts.Home.X, m.opts.Home.Y)
		return m, nil
	}

	if dir, ok := viewport.KeyDirection(key); ok {
		m.held.Press(dir, m.now())
	}
	return m, nil
}

// recordHover reports the hovered cell to the state manager.
func (m Model) recordHover(at time.Time) {
	cell, star, ok := m.field.HoveredStar()
	if !ok {
		m.state.ClearHover()
		return
	}
	if m.state.Hover(at, cell, star) {
		m.logger.Debug("discovered star %d at (%d, %d)", star.Name, cell.X, cell.Y)
	}
}

// resize recomputes the field area after a size or panel change. The
// pointer is forgotten until the next mouse event.
func (m Model) resize() Model {
	m.field = m.field.SetSize(m.width, m.fieldHeight()).ClearPointer()
	m.state.ClearHover()
	return m
}

func (m Model) fieldHeight() int {
	h := m.height - headerLines - footerLines
	if m.showEvents {
		h -= eventLogLines + 1
	}
	return max(h, 0)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	content := m.field.View()
	if m.showHelp {
		content = renderHelp(m.theme, m.width, m.fieldHeight())
	}
	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(content)
	b.WriteString("\n")
	if m.showEvents {
		b.WriteString(m.renderEventLog())
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	style := lipgloss.NewStyle().Foreground(m.theme.Text)
	return style.Render(headerLine(m.field.ViewState().PositionLabel(), viewport.HelpLabel, m.width))
}

// headerLine places left at the start and right at the end of a line of
// the given width. right is dropped when both do not fit.
func headerLine(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderEventLog() string {
	dimStyle := lipgloss.NewStyle().Foreground(m.theme.Dim)
	rule := dimStyle.Render(strings.Repeat("─", max(m.width, 0)))
	events := m.state.RecentEvents(eventLogLines)
	body := RenderEventLog(events, m.theme, m.width)
	// Pad so the panel keeps a fixed height
	if n := eventLogLines - strings.Count(body, "\n") - 1; n > 0 {
		body += strings.Repeat("\n", n)
	}
	return rule + "\n" + body
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(m.theme.Dim)
	textStyle := lipgloss.NewStyle().Foreground(m.theme.Text)

	info := dimStyle.Render("hover a star for info")
	if _, star, ok := m.field.HoveredStar(); ok && star.Exists {
		info = textStyle.Render(star.Info())
	}

	return info + "\n" + m.renderStatusLine()
}

func (m Model) renderStatusLine() string {
	dimStyle := lipgloss.NewStyle().Foreground(m.theme.Dim)

	var b strings.Builder
	for i, r := range title {
		color := gradientColor(i, 0, len(title), 1)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
	}

	status := fmt.Sprintf("  seed %d | theme %s | %d discovered", m.snapshot.Seed, m.theme.Name, m.snapshot.Discovered)
	if fps := m.fps(); fps > 0 {
		status += fmt.Sprintf(" | %.0f fps", fps)
	}
	status += " | ?: help"
	b.WriteString(dimStyle.Render(status))
	return b.String()
}

// fps is the frame rate measured over the recent frame history.
func (m Model) fps() float64 {
	avg := m.state.AverageFrameTime()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// gradientColor returns a hex color for a position in the title gradient.
// Blue -> purple -> magenta -> pink, darker toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.33 {
		// Blue to Purple
		t := xRatio / 0.33
		r = lerp(59, 139, t)
		g = lerp(130, 92, t)
		b = 246
	} else if xRatio < 0.66 {
		// Purple to Magenta
		t := (xRatio - 0.33) / 0.33
		r = lerp(139, 217, t)
		g = lerp(92, 70, t)
		b = lerp(246, 239, t)
	} else {
		// Magenta to Pink
		t := (xRatio - 0.66) / 0.34
		r = lerp(217, 236, t)
		g = lerp(70, 72, t)
		b = lerp(239, 153, t)
	}

	brightness := 1.0 - (yRatio * 0.5)
	clamp := func(v float64) int { return min(max(int(v*brightness), 0), 255) }

	return fmt.Sprintf("#%02X%02X%02X", clamp(r), clamp(g), clamp(b))
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.opts.FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
