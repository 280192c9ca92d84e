package ui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/export"
	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/viewport"
)

const (
	// Return-to-home animation
	animDuration = 400 * time.Millisecond

	// Hover ring glyphs, drawn either side of the star
	glyphRingLeft  = '('
	glyphRingRight = ')'

	// Drawn above and right of stars already discovered
	glyphDiscovered = '°'
)

// FieldViewModel renders the visible block of the starfield.
type FieldViewModel struct {
	width  int
	height int

	field  starfield.Field
	layout viewport.Layout
	view   viewport.State
	theme  Theme

	// Pointer position in view cells; nil when unknown
	pointer *viewport.Position

	// Reports cells whose star was already discovered
	discovered func(viewport.Cell) bool

	// Animation state
	animating bool
	animFrom  viewport.State
	animTarg  viewport.State
	animStart time.Time
}

// NewFieldViewModel creates a field view for seed.
func NewFieldViewModel(seed int64, layout viewport.Layout, theme Theme) FieldViewModel {
	return FieldViewModel{
		field:  starfield.NewField(seed),
		layout: layout,
		theme:  theme,
	}
}

// SetSize updates the field area in terminal cells.
func (m FieldViewModel) SetSize(width, height int) FieldViewModel {
	m.width = max(width, 0)
	m.height = max(height, 0)
	return m
}

// SetView jumps to a pan offset.
func (m FieldViewModel) SetView(s viewport.State) FieldViewModel {
	m.view = s
	m.animating = false
	return m
}

// SetTheme switches the color scheme.
func (m FieldViewModel) SetTheme(t Theme) FieldViewModel {
	m.theme = t
	return m
}

// SetDiscovered marks stars for which fn returns true.
func (m FieldViewModel) SetDiscovered(fn func(viewport.Cell) bool) FieldViewModel {
	m.discovered = fn
	return m
}

// ViewState returns the current pan offset.
func (m FieldViewModel) ViewState() viewport.State {
	return m.view
}

// Animating reports whether a return-to-home animation is running.
func (m FieldViewModel) Animating() bool {
	return m.animating
}

// Grid returns the visible cells.
func (m FieldViewModel) Grid() viewport.Grid {
	cols, rows := m.layout.Fit(m.width, m.height)
	return viewport.Visible(m.view, cols, rows)
}

// PointerAt records the pointer at (px, py), relative to the field's
// top-left corner.
func (m FieldViewModel) PointerAt(px, py int) FieldViewModel {
	pos, ok := m.layout.HitTest(px, py)
	if !ok || px >= m.width || py >= m.height {
		m.pointer = nil
		return m
	}
	m.pointer = &pos
	return m
}

// ClearPointer forgets the pointer position.
func (m FieldViewModel) ClearPointer() FieldViewModel {
	m.pointer = nil
	return m
}

// HoveredStar returns the cell under the pointer and its contents. ok is
// false when the pointer is not over the field.
func (m FieldViewModel) HoveredStar() (viewport.Cell, starfield.Star, bool) {
	if m.pointer == nil {
		return viewport.Cell{}, starfield.Star{}, false
	}
	c := m.Grid().At(m.pointer.Col, m.pointer.Row)
	return c, m.field.At(c.X, c.Y), true
}

// Pan advances the view by dt with keys held. It does nothing while
// animating.
func (m FieldViewModel) Pan(keys viewport.Direction, dt time.Duration, speed float64) FieldViewModel {
	if m.animating {
		return m
	}
	m.view = viewport.Update(m.view, keys, dt, speed)
	return m
}

// StartReturn begins an eased pan to target.
func (m FieldViewModel) StartReturn(target viewport.State, now time.Time) FieldViewModel {
	m.animating = true
	m.animFrom = m.view
	m.animTarg = target
	m.animStart = now
	return m
}

// Step advances the return animation to now.
func (m FieldViewModel) Step(now time.Time) FieldViewModel {
	if !m.animating {
		return m
	}
	t := float64(now.Sub(m.animStart)) / float64(animDuration)
	if t >= 1.0 {
		// Animation complete
		m.animating = false
		m.view = m.animTarg
		return m
	}
	t = max(t, 0)

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)

	m.view = viewport.State{
		OffsetX: lerp(m.animFrom.OffsetX, m.animTarg.OffsetX, t),
		OffsetY: lerp(m.animFrom.OffsetY, m.animTarg.OffsetY, t),
	}
	return m
}

// View renders the field.
func (m FieldViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return m.renderFieldCanvas()
}

func (m FieldViewModel) renderFieldCanvas() string {
	width, height := m.width, m.height

	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
		}
	}

	set := func(x, y int, r rune, c lipgloss.Color) {
		if x < 0 || y < 0 || x >= width || y >= height {
			return
		}
		canvas[y][x] = r
		colors[y][x] = c
	}

	// The marker needs a free column right of the glyph and a free row above it
	markDiscovered := m.discovered != nil && m.layout.CellWidth >= 3 && m.layout.CellHeight >= 2

	for pos, c := range m.Grid().Cells() {
		star := m.field.At(c.X, c.Y)
		if !star.Exists {
			continue
		}
		x, y := m.layout.Center(pos)
		set(x, y, export.StarGlyph(star.Diameter), m.theme.StarColor(star.Color))

		if m.pointer != nil && *m.pointer == pos {
			set(x-1, y, glyphRingLeft, m.theme.Ring)
			set(x+1, y, glyphRingRight, m.theme.Ring)
		} else if markDiscovered && m.discovered(c) {
			set(x+1, y-1, glyphDiscovered, m.theme.Dim)
		}
	}

	// Render canvas to string
	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if colors[y][x] == "" {
				b.WriteRune(canvas[y][x])
				continue
			}
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// lerp linear interpolation
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
