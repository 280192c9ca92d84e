// Package census counts stars and tallies their attributes over a block of
// the field.
package census

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"

	"github.com/guptarohit/asciigraph"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/viewport"
)

// DiameterBand is the width of one diameter histogram bucket.
const DiameterBand = 10

// WaterBand is the width of one water histogram bucket, in percent.
const WaterBand = 10

// Report holds the tallies for one surveyed block.
type Report struct {
	Seed  int64
	Grid  viewport.Grid
	Cells int
	Stars int

	// Diameters[i] counts stars with diameter in [10+10i, 20+10i).
	Diameters [starfield.DiameterSpan / DiameterBand]int
	// Colors is indexed by palette position.
	Colors [8]int
	// Water[i] counts stars with water in [10i, 10i+10).
	Water [starfield.WaterSpan / WaterBand]int
	// Planets[i] counts stars with i+1 planets.
	Planets [starfield.PlanetsSpan]int

	// PerColumn and PerRow count stars in each view column and row.
	PerColumn []float64
	PerRow    []float64

	sumDiameter int
	sumWater    int
	sumPlanets  int
}

func newReport(seed int64, g viewport.Grid) *Report {
	return &Report{
		Seed:      seed,
		Grid:      g,
		PerColumn: make([]float64, g.Cols),
		PerRow:    make([]float64, g.Rows),
	}
}

func (r *Report) add(col, row int, s starfield.Star) {
	r.Cells++
	if !s.Exists {
		return
	}
	r.Stars++
	r.Diameters[(s.Diameter-starfield.DiameterMin)/DiameterBand]++
	if i := starfield.PaletteIndex(s.Color); i >= 0 {
		r.Colors[i]++
	}
	r.Water[s.Water/WaterBand]++
	r.Planets[s.Planets-starfield.PlanetsMin]++
	r.PerColumn[col]++
	r.PerRow[row]++
	r.sumDiameter += s.Diameter
	r.sumWater += s.Water
	r.sumPlanets += s.Planets
}

func (r *Report) merge(o *Report) {
	r.Cells += o.Cells
	r.Stars += o.Stars
	for i := range r.Diameters {
		r.Diameters[i] += o.Diameters[i]
	}
	for i := range r.Colors {
		r.Colors[i] += o.Colors[i]
	}
	for i := range r.Water {
		r.Water[i] += o.Water[i]
	}
	for i := range r.Planets {
		r.Planets[i] += o.Planets[i]
	}
	for i := range r.PerColumn {
		r.PerColumn[i] += o.PerColumn[i]
	}
	for i := range r.PerRow {
		r.PerRow[i] += o.PerRow[i]
	}
	r.sumDiameter += o.sumDiameter
	r.sumWater += o.sumWater
	r.sumPlanets += o.sumPlanets
}

// Survey generates every cell of g and tallies the result. Rows are split
// across up to workers goroutines; workers <= 0 uses GOMAXPROCS.
func Survey(ctx context.Context, seed int64, g viewport.Grid, workers int) (*Report, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	total := newReport(seed, g)
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	field := starfield.NewField(seed)
	for row := 0; row < g.Rows; row++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			part := newReport(seed, g)
			for col := 0; col < g.Cols; col++ {
				c := g.At(col, row)
				part.add(col, row, field.At(c.X, c.Y))
			}
			mu.Lock()
			total.merge(part)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("survey: %w", err)
	}
	return total, nil
}

// Density returns the fraction of cells holding a star.
func (r *Report) Density() float64 {
	if r.Cells == 0 {
		return 0
	}
	return float64(r.Stars) / float64(r.Cells)
}

func (r *Report) mean(sum int) float64 {
	if r.Stars == 0 {
		return 0
	}
	return float64(sum) / float64(r.Stars)
}

// MeanDiameter returns the average star diameter.
func (r *Report) MeanDiameter() float64 { return r.mean(r.sumDiameter) }

// MeanWater returns the average water percentage.
func (r *Report) MeanWater() float64 { return r.mean(r.sumWater) }

// MeanPlanets returns the average planet count.
func (r *Report) MeanPlanets() float64 { return r.mean(r.sumPlanets) }

// WriteReport writes the tallies as text.
func WriteReport(w io.Writer, r *Report) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Census seed %d @ (%d, %d) %dx%d\n",
		r.Seed, r.Grid.Origin.X, r.Grid.Origin.Y, r.Grid.Cols, r.Grid.Rows)
	fmt.Fprintln(w, strings.Repeat("─", 48))
	p.Fprintf(w, "Cells:    %d\n", r.Cells)
	p.Fprintf(w, "Stars:    %d (density %.4f, expected 0.0500)\n", r.Stars, r.Density())
	fmt.Fprintf(w, "Means:    diameter %.1f, water %.1f%%, planets %.2f\n",
		r.MeanDiameter(), r.MeanWater(), r.MeanPlanets())

	fmt.Fprintln(w, "\nDiameter")
	for i, n := range r.Diameters {
		lo := starfield.DiameterMin + i*DiameterBand
		p.Fprintf(w, "  %2d-%2d  %8d  %s\n", lo, lo+DiameterBand-1, n, bar(n, r.Stars))
	}

	fmt.Fprintln(w, "\nColor")
	for i, c := range starfield.Palette() {
		p.Fprintf(w, "  %s  %8d  %s\n", c, r.Colors[i], bar(r.Colors[i], r.Stars))
	}

	fmt.Fprintln(w, "\nWater")
	for i, n := range r.Water {
		lo := i * WaterBand
		p.Fprintf(w, "  %2d-%2d%%  %7d  %s\n", lo, lo+WaterBand-1, n, bar(n, r.Stars))
	}

	fmt.Fprintln(w, "\nPlanets")
	for i, n := range r.Planets {
		p.Fprintf(w, "  %5d  %8d  %s\n", i+starfield.PlanetsMin, n, bar(n, r.Stars))
	}
}

// bar draws n/total as up to 30 block characters.
func bar(n, total int) string {
	if total == 0 {
		return ""
	}
	return strings.Repeat("█", n*30/total)
}

// ColumnPlot charts stars per view column.
func ColumnPlot(r *Report, width, height int) string {
	if len(r.PerColumn) == 0 {
		return ""
	}
	return asciigraph.Plot(r.PerColumn,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("stars per column"),
	)
}

// RowPlot charts stars per view row.
func RowPlot(r *Report, width, height int) string {
	if len(r.PerRow) == 0 {
		return ""
	}
	return asciigraph.Plot(r.PerRow,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("stars per row"),
	)
}
