package export

import (
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/canvas"
	"github.com/litescript/ls-starfield/internal/viewport"
)

// StarGlyph returns the character drawn for a star of the given diameter.
func StarGlyph(diameter int) rune {
	switch {
	case diameter < 20:
		return '·'
	case diameter < 30:
		return '•'
	case diameter < 40:
		return '●'
	default:
		return '◉'
	}
}

// WriteGlyphMap draws one character per cell: a glyph for each star and a
// blank for empty cells. When color is set each glyph takes its star's
// palette color.
func WriteGlyphMap(w io.Writer, r *RegionExport, color bool) error {
	byCell := make(map[[2]int64]StarExport, len(r.Stars))
	for _, s := range r.Stars {
		byCell[[2]int64{s.X, s.Y}] = s
	}

	var sb strings.Builder
	for pos, c := range r.Grid().Cells() {
		s, ok := byCell[[2]int64{c.X, c.Y}]
		switch {
		case !ok:
			sb.WriteByte(' ')
		case color:
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(s.Color)).
				Render(string(StarGlyph(s.Diameter))))
		default:
			sb.WriteRune(StarGlyph(s.Diameter))
		}
		if pos.Col == r.Cols-1 {
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// BrailleMap draws the region on a braille canvas with dotsPerCell dots
// per cell side. Stars are filled circles scaled like the SVG rendering.
// A hover cell inside the region gets a ring the size of the cell.
func BrailleMap(r *RegionExport, dotsPerCell int, hover *viewport.Cell) *canvas.Canvas {
	d := max(dotsPerCell, 1)
	w := (r.Cols*d + 1) / 2
	h := (r.Rows*d + 3) / 4
	c := canvas.New(w, h)

	for _, s := range r.Stars {
		col := int(s.X - r.X)
		row := int(s.Y - r.Y)
		cx := col*d + d/2
		cy := row*d + d/2
		radius := int(math.Round(float64(s.Diameter) * float64(d) / DefaultCellSize))
		c.FillCircle(cx, cy, radius, lipgloss.Color(s.Color))
	}

	if hover != nil && r.Grid().Contains(*hover) {
		col := int(hover.X - r.X)
		row := int(hover.Y - r.Y)
		c.DrawCircle(col*d+d/2, row*d+d/2, d/2)
	}
	return c
}
