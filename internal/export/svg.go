package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/litescript/ls-starfield/internal/viewport"
)

// DefaultCellSize is the side of one cell in SVG pixels.
const DefaultCellSize = 100

const (
	svgBackground = "#000"
	svgText       = "#fff"
	svgHoverRing  = "#fffb"
	svgFont       = "20px Monospace"
)

// SVGOptions controls RegionToSVG.
type SVGOptions struct {
	// CellSize is the side of one cell in pixels. Zero means DefaultCellSize.
	CellSize int
	// Hover rings the star in this cell and prints its readout.
	Hover *viewport.Cell
	// Labels draws the position readout and control hint.
	Labels bool
}

// RegionToSVG draws the region as the explorer page does: a black field,
// one filled circle per star with its diameter as radius in a 100px cell,
// and a ring around the hovered star.
func RegionToSVG(r *RegionExport, opts SVGOptions) string {
	size := opts.CellSize
	if size <= 0 {
		size = DefaultCellSize
	}
	scale := float64(size) / DefaultCellSize
	width := r.Cols * size
	height := r.Rows * size

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" data-seed="%d">
<rect width="100%%" height="100%%" fill="%s"/>
<g class="stars">
`, width, height, width, height, r.Seed, svgBackground)

	for _, s := range r.Stars {
		cx, cy := cellCenter(r, s.X, s.Y, size)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" data-x="%d" data-y="%d" data-name="%d"/>
`, cx, cy, float64(s.Diameter)*scale, html.EscapeString(s.Color), s.X, s.Y, s.Name)
	}
	sb.WriteString("</g>\n")

	var hovered *StarExport
	if opts.Hover != nil && r.Grid().Contains(*opts.Hover) {
		if s, ok := r.Lookup(*opts.Hover); ok {
			hovered = &s
			cx, cy := cellCenter(r, s.X, s.Y, size)
			fmt.Fprintf(&sb, `<circle class="hover" cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="2"/>
`, cx, cy, 50*scale, svgHoverRing)
		}
	}

	if opts.Labels {
		pos := viewport.At(r.X, r.Y).PositionLabel()
		fmt.Fprintf(&sb, `<g fill="%s" style="font: %s">
<text x="10" y="30">%s</text>
<text x="%d" y="30" text-anchor="end">%s</text>
`, svgText, svgFont, html.EscapeString(pos), width-10, html.EscapeString(viewport.HelpLabel))
		if hovered != nil {
			fmt.Fprintf(&sb, "<text x=\"10\" y=\"%d\">%s</text>\n",
				height-30, html.EscapeString(hovered.Star().Info()))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func cellCenter(r *RegionExport, x, y int64, size int) (float64, float64) {
	col := float64(x - r.X)
	row := float64(y - r.Y)
	return col*float64(size) + float64(size)/2, row*float64(size) + float64(size)/2
}
