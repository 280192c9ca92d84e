// Package viewport tracks the pan offset over the star grid and maps
// screen positions to grid cells.
package viewport

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"time"
)

// DefaultPanSpeed is the pan rate in cells per millisecond (50 cells/s).
const DefaultPanSpeed = 50.0 / 1000.0

// ErrInvalidSize indicates a non-positive cell or view size.
var ErrInvalidSize = errors.New("viewport: size must be positive")

// Direction is a set of held pan directions.
type Direction uint8

const (
	Left Direction = 1 << iota
	Right
	Up
	Down
)

// Has reports whether every direction in o is held.
func (d Direction) Has(o Direction) bool {
	return d&o == o && o != 0
}

// KeyDirection maps a key name to its pan direction. Each direction has a
// letter and an arrow alias.
func KeyDirection(key string) (Direction, bool) {
	switch key {
	case "a", "A", "left":
		return Left, true
	case "d", "D", "right":
		return Right, true
	case "w", "W", "up":
		return Up, true
	case "s", "S", "down":
		return Down, true
	}
	return 0, false
}

// State is the pan offset in fractional grid units.
type State struct {
	OffsetX float64
	OffsetY float64
}

// At returns a state panned to the given cell.
func At(x, y int64) State {
	return State{OffsetX: float64(x), OffsetY: float64(y)}
}

// Update advances the pan offset by dt with the given keys held.
// speed is in cells per millisecond. Opposite keys cancel.
func Update(s State, keys Direction, dt time.Duration, speed float64) State {
	if dt <= 0 || keys == 0 {
		return s
	}
	step := speed * float64(dt) / float64(time.Millisecond)

	if keys.Has(Left) {
		s.OffsetX -= step
	}
	if keys.Has(Right) {
		s.OffsetX += step
	}
	if keys.Has(Up) {
		s.OffsetY -= step
	}
	if keys.Has(Down) {
		s.OffsetY += step
	}
	return s
}

// Origin returns the cell drawn at the top-left corner of the view.
func (s State) Origin() (int64, int64) {
	return int64(math.Floor(s.OffsetX)), int64(math.Floor(s.OffsetY))
}

// Cell is a grid coordinate.
type Cell struct {
	X, Y int64
}

// Grid is the block of cells visible in a view.
type Grid struct {
	Origin Cell
	Cols   int
	Rows   int
}

// Visible returns the grid of cols x rows cells for s.
func Visible(s State, cols, rows int) Grid {
	ox, oy := s.Origin()
	return Grid{
		Origin: Cell{X: ox, Y: oy},
		Cols:   max(cols, 0),
		Rows:   max(rows, 0),
	}
}

// Len returns the number of cells in the grid.
func (g Grid) Len() int {
	return g.Cols * g.Rows
}

// At returns the world cell for view column col and row row.
func (g Grid) At(col, row int) Cell {
	return Cell{X: g.Origin.X + int64(col), Y: g.Origin.Y + int64(row)}
}

// Contains reports whether c is inside the grid.
func (g Grid) Contains(c Cell) bool {
	dx := c.X - g.Origin.X
	dy := c.Y - g.Origin.Y
	return dx >= 0 && dy >= 0 && dx < int64(g.Cols) && dy < int64(g.Rows)
}

// Cells yields every visible cell row by row with its view position.
func (g Grid) Cells() iter.Seq2[Position, Cell] {
	return func(yield func(Position, Cell) bool) {
		for row := 0; row < g.Rows; row++ {
			for col := 0; col < g.Cols; col++ {
				if !yield(Position{Col: col, Row: row}, g.At(col, row)) {
					return
				}
			}
		}
	}
}

// Position is a cell's place in the view, in cells from the top-left.
type Position struct {
	Col, Row int
}

// Layout is the size of one grid cell in screen units (terminal columns
// and rows, or pixels).
type Layout struct {
	CellWidth  int
	CellHeight int
}

// NewLayout validates and returns a layout.
func NewLayout(cellWidth, cellHeight int) (Layout, error) {
	if cellWidth <= 0 || cellHeight <= 0 {
		return Layout{}, ErrInvalidSize
	}
	return Layout{CellWidth: cellWidth, CellHeight: cellHeight}, nil
}

// Fit returns how many whole or partial cells cover a screen of the given
// size, matching a canvas that draws cells until it runs off the edge.
func (l Layout) Fit(width, height int) (cols, rows int) {
	if l.CellWidth <= 0 || l.CellHeight <= 0 || width <= 0 || height <= 0 {
		return 0, 0
	}
	cols = (width + l.CellWidth - 1) / l.CellWidth
	rows = (height + l.CellHeight - 1) / l.CellHeight
	return cols, rows
}

// HitTest maps a screen position to the view cell under it.
func (l Layout) HitTest(px, py int) (Position, bool) {
	if px < 0 || py < 0 || l.CellWidth <= 0 || l.CellHeight <= 0 {
		return Position{}, false
	}
	return Position{Col: px / l.CellWidth, Row: py / l.CellHeight}, true
}

// Center returns the screen position of a view cell's center.
func (l Layout) Center(p Position) (int, int) {
	return p.Col*l.CellWidth + l.CellWidth/2, p.Row*l.CellHeight + l.CellHeight/2
}

// HelpLabel is the control hint drawn at the top-right of the view.
const HelpLabel = "WASD/Arrows - move, hover star - info"

// PositionLabel is the origin readout drawn at the top-left of the view.
func (s State) PositionLabel() string {
	x, y := s.Origin()
	return fmt.Sprintf("x: %d, y: %d", x, y)
}
