// Package export renders a block of the starfield as JSON, a text table,
// SVG or a terminal map.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/viewport"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatSVG   Format = "svg"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatTable, FormatSVG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// RegionExport is the JSON-serializable representation of a block of cells.
type RegionExport struct {
	Seed        int64        `json:"seed"`
	X           int64        `json:"x"`
	Y           int64        `json:"y"`
	Cols        int          `json:"cols"`
	Rows        int          `json:"rows"`
	GeneratedAt time.Time    `json:"generated_at"`
	StarCount   int          `json:"star_count"`
	Stars       []StarExport `json:"stars"`
}

// StarExport is a star with its cell coordinates.
type StarExport struct {
	X        int64  `json:"x"`
	Y        int64  `json:"y"`
	Name     int32  `json:"name"`
	Diameter int    `json:"diameter"`
	Color    string `json:"color"`
	Water    int    `json:"water"`
	Planets  int    `json:"planets"`
}

// Star returns the generated record for the exported star.
func (s StarExport) Star() starfield.Star {
	return starfield.Star{
		Exists:   true,
		Name:     s.Name,
		Diameter: s.Diameter,
		Color:    starfield.Color(s.Color),
		Water:    s.Water,
		Planets:  s.Planets,
	}
}

// ExportRegion generates every cell of g for seed and keeps the stars,
// in row-major order.
func ExportRegion(seed int64, g viewport.Grid, generatedAt time.Time) *RegionExport {
	export := &RegionExport{
		Seed:        seed,
		X:           g.Origin.X,
		Y:           g.Origin.Y,
		Cols:        g.Cols,
		Rows:        g.Rows,
		GeneratedAt: generatedAt,
		Stars:       []StarExport{},
	}

	field := starfield.NewField(seed)
	for _, c := range g.Cells() {
		star := field.At(c.X, c.Y)
		if !star.Exists {
			continue
		}
		export.Stars = append(export.Stars, StarExport{
			X:        c.X,
			Y:        c.Y,
			Name:     star.Name,
			Diameter: star.Diameter,
			Color:    star.Color.Hex(),
			Water:    star.Water,
			Planets:  star.Planets,
		})
	}
	export.StarCount = len(export.Stars)
	return export
}

// Grid returns the block of cells the export covers.
func (r *RegionExport) Grid() viewport.Grid {
	return viewport.Grid{Origin: viewport.Cell{X: r.X, Y: r.Y}, Cols: r.Cols, Rows: r.Rows}
}

// Lookup returns the exported star at c, if any.
func (r *RegionExport) Lookup(c viewport.Cell) (StarExport, bool) {
	for _, s := range r.Stars {
		if s.X == c.X && s.Y == c.Y {
			return s, true
		}
	}
	return StarExport{}, false
}

// Density returns the fraction of cells holding a star.
func (r *RegionExport) Density() float64 {
	cells := r.Grid().Len()
	if cells == 0 {
		return 0
	}
	return float64(r.StarCount) / float64(cells)
}

// WriteJSON writes the region as JSON to the given writer.
func (r *RegionExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, r *RegionExport) {
	fmt.Fprintf(w, "Starfield seed %d @ (%d, %d) %dx%d, generated %s\n",
		r.Seed, r.X, r.Y, r.Cols, r.Rows, r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 64))

	if len(r.Stars) == 0 {
		fmt.Fprintln(w, "No stars in region")
		return
	}

	// Header
	fmt.Fprintf(w, "%8s %8s %12s %5s %-8s %6s %7s\n",
		"X", "Y", "Name", "Diam", "Color", "Water", "Planets")
	fmt.Fprintln(w, strings.Repeat("─", 64))

	for _, s := range r.Stars {
		fmt.Fprintf(w, "%8d %8d %12d %5d %-8s %5d%% %7d\n",
			s.X, s.Y, s.Name, s.Diameter, s.Color, s.Water, s.Planets)
	}

	fmt.Fprintf(w, "\nTotal: %d stars in %d cells (%.1f%%)\n",
		r.StarCount, r.Grid().Len(), r.Density()*100)
}

// Write encodes r in the given format.
func Write(w io.Writer, format Format, r *RegionExport, opts SVGOptions) error {
	switch format {
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatTable:
		WriteSummaryTable(w, r)
		return nil
	case FormatSVG:
		_, err := io.WriteString(w, RegionToSVG(r, opts))
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
